// SPDX-License-Identifier: MIT
package metric

import "math"

// manhattanMetric accumulates absolute differences; Norm divides by length.
type manhattanMetric struct{}

func (manhattanMetric) Name() string { return "manhattan" }

func (manhattanMetric) Init() float64 { return 0 }

func (manhattanMetric) Reduce(prevAcc, x, y float64) float64 {
	return prevAcc + math.Abs(x-y)
}

func (manhattanMetric) Norm(acc float64, length int) float64 {
	return acc / float64(length)
}

// InverseNorm inverts Norm: d = acc/length  =>  acc = d*length.
func (manhattanMetric) InverseNorm(d float64, length int) float64 {
	return d * float64(length)
}
