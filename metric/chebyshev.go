// SPDX-License-Identifier: MIT
package metric

import "math"

// chebyshevMetric tracks the running maximum absolute difference; Norm is
// the identity (no length normalization). It intentionally does not
// implement InverseNormer: its Norm already is the raw accumulator, so a
// pre-transform buys nothing.
type chebyshevMetric struct{}

func (chebyshevMetric) Name() string { return "chebyshev" }

func (chebyshevMetric) Init() float64 { return 0 }

func (chebyshevMetric) Reduce(prevAcc, x, y float64) float64 {
	d := math.Abs(x - y)
	if d > prevAcc {
		return d
	}

	return prevAcc
}

func (chebyshevMetric) Norm(acc float64, _ int) float64 {
	return acc
}
