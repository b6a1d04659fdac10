// SPDX-License-Identifier: MIT
package metric

import (
	"math"

	"github.com/onexAdditional/dtwindex/tsview"
)

// LBKeogh computes the Euclidean LB-Keogh lower bound of candidate against
// queryEnv, the envelope of some query view of the same length:
//
//	sqrt( sum_i (max(0, candidate[i]-upper[i]))^2 + (max(0, lower[i]-candidate[i]))^2 ) / n
//
// It is a cheap necessary condition for the true DTW distance: the DTW
// distance between query and candidate is never smaller than LBKeogh.
func LBKeogh(queryEnv *tsview.Envelope, candidate Sequence) (float64, error) {
	n := candidate.Len()
	if n == 0 || len(queryEnv.Upper) == 0 {
		return 0, ErrEmptyView
	}
	if n != len(queryEnv.Upper) {
		return 0, ErrLengthMismatch
	}

	var sum float64
	for i := 0; i < n; i++ {
		c := candidate.Get(i)
		if d := c - queryEnv.Upper[i]; d > 0 {
			sum += d * d
		}
		if d := queryEnv.Lower[i] - c; d > 0 {
			sum += d * d
		}
	}

	return math.Sqrt(sum) / float64(n), nil
}

// CascadeDistance runs the Euclidean-type query cascade: an LB-Keogh
// pre-filter (only meaningful when query and candidate share a length),
// followed by the full warped distance with early row-dropout. Either
// stage may short-circuit to +Inf once the running bound reaches dropout.
func CascadeDistance(query *tsview.View, candidate Sequence, m Metric, band int, dropout float64) (float64, error) {
	if query.Len() == candidate.Len() {
		env := query.Envelope(band)
		lb, err := LBKeogh(env, candidate)
		if err != nil {
			return 0, err
		}
		if lb >= dropout {
			return math.Inf(1), nil
		}
	}

	return Warped(query, candidate, m, band, dropout)
}
