// SPDX-License-Identifier: MIT
package metric

import (
	"strings"

	"github.com/onexAdditional/dtwindex/config"
	"github.com/onexAdditional/dtwindex/tsview"
)

// dtwSuffix names the warped variant of a registered metric: getDistance
// of "euclidean_dtw" is the warped (cascaded) Euclidean distance.
const dtwSuffix = "_dtw"

// DistanceFunc is the shape returned by GetDistance: both the pairwise and
// the warped paths conform to it so group/index code can hold either kind
// without branching on which it got. cfg supplies the warping band ratio;
// pairwise implementations ignore it. b is a Sequence rather than a
// concrete *tsview.View so the same DistanceFunc can compare a query
// against a group centroid (no backing dataset row) as well as another
// dataset view.
type DistanceFunc func(a *tsview.View, b Sequence, cfg config.Config, dropout float64) (float64, error)

// GetDistance resolves name to a DistanceFunc. "euclidean", "manhattan",
// and "chebyshev" resolve to their pairwise (equal-length) form; appending
// "_dtw" resolves to the warped form. Euclidean's warped form is the
// LB-Keogh/DTW cascade, per the specification's preference for cascading
// Euclidean-type queries.
func GetDistance(name string) (DistanceFunc, error) {
	if strings.HasSuffix(name, dtwSuffix) {
		base := strings.TrimSuffix(name, dtwSuffix)
		m, err := Lookup(base)
		if err != nil {
			return nil, err
		}
		if base == "euclidean" {
			return func(a *tsview.View, b Sequence, cfg config.Config, dropout float64) (float64, error) {
				band := cfg.Band(minLen(a, b))

				return CascadeDistance(a, b, m, band, dropout)
			}, nil
		}

		return func(a *tsview.View, b Sequence, cfg config.Config, dropout float64) (float64, error) {
			band := cfg.Band(minLen(a, b))

			return Warped(a, b, m, band, dropout)
		}, nil
	}

	m, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	return func(a *tsview.View, b Sequence, _ config.Config, dropout float64) (float64, error) {
		return Pairwise(a, b, m, dropout)
	}, nil
}

// GetQueryDistance resolves m's warped ("_dtw") DistanceFunc — the one
// every best-match/k-NN query primitive should call, so a query against a
// euclidean-clustered space is routed through the LB-Keogh cascade rather
// than the raw warped distance.
func GetQueryDistance(m Metric) (DistanceFunc, error) {
	return GetDistance(m.Name() + dtwSuffix)
}

func minLen(a, b Sequence) int {
	if a.Len() < b.Len() {
		return a.Len()
	}

	return b.Len()
}
