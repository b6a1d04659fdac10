// SPDX-License-Identifier: MIT
package metric

import "math"

// Pairwise computes the equal-length distance between a and b under metric
// m, returning +Inf as soon as the running value is guaranteed to reach
// dropout. When m implements InverseNormer, the dropout is transformed
// once into the accumulator's own scale and compared against the raw
// accumulator on every step; otherwise Norm is evaluated every step.
func Pairwise(a, b Sequence, m Metric, dropout float64) (float64, error) {
	n := a.Len()
	if n == 0 || b.Len() == 0 {
		return 0, ErrEmptyView
	}
	if n != b.Len() {
		return 0, ErrLengthMismatch
	}

	acc := m.Init()

	if inv, ok := m.(InverseNormer); ok {
		rawDropout := inv.InverseNorm(dropout, n)
		for i := 0; i < n; i++ {
			acc = m.Reduce(acc, a.Get(i), b.Get(i))
			if acc >= rawDropout {
				return math.Inf(1), nil
			}
		}

		return m.Norm(acc, n), nil
	}

	for i := 0; i < n; i++ {
		acc = m.Reduce(acc, a.Get(i), b.Get(i))
		if m.Norm(acc, n) >= dropout {
			return math.Inf(1), nil
		}
	}

	return m.Norm(acc, n), nil
}
