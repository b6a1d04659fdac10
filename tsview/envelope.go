// SPDX-License-Identifier: MIT
package tsview

// Envelope holds the running upper/lower extrema of a View over a warping
// band of radius r, used by the LB-Keogh lower bound:
//
//	upper[i] = max(v[i-r..i+r])
//	lower[i] = min(v[i-r..i+r])
//
// bounds are clamped to the view's own range.
type Envelope struct {
	Upper []float64
	Lower []float64
	R     int
}

// Envelope lazily builds and memoizes the view's envelope for the given
// warping band radius r. A cached envelope is reused as long as it was
// built with the same r; otherwise it is rebuilt, since the band ratio may
// differ per caller (e.g. a query's own length vs. a group's length).
func (v *View) Envelope(r int) *Envelope {
	if v.env != nil && v.env.R == r {
		return v.env
	}

	n := v.length
	upper := make([]float64, n)
	lower := make([]float64, n)
	for i := 0; i < n; i++ {
		lo := i - r
		if lo < 0 {
			lo = 0
		}
		hi := i + r
		if hi > n-1 {
			hi = n - 1
		}

		mn, mx := v.Get(lo), v.Get(lo)
		for j := lo + 1; j <= hi; j++ {
			x := v.Get(j)
			if x < mn {
				mn = x
			}
			if x > mx {
				mx = x
			}
		}
		lower[i] = mn
		upper[i] = mx
	}

	env := &Envelope{Upper: upper, Lower: lower, R: r}
	v.env = env

	return env
}
