// SPDX-License-Identifier: MIT
// Package metric defines the distance-metric capability contract used by
// the grouping and query layers, plus the three concrete metrics shipped
// with the index: euclidean, manhattan, chebyshev. Each metric supplies a
// pairwise (equal-length) computation and a DTW-warped computation; for
// euclidean, the warped path is additionally cascaded through an LB-Keogh
// pre-filter.
//
// The source this package is modeled on probes, at compile time, whether a
// metric type exposes an extra finalization step; Go has no such probe, so
// the same capability is expressed as an optional interface tested with a
// type assertion (see InverseNormer).
package metric

import "errors"

// Sentinel errors for metric lookup and computation.
var (
	// ErrUnknownMetric indicates GetDistance was asked for a name with no
	// registered implementation.
	ErrUnknownMetric = errors.New("metric: unknown distance name")

	// ErrLengthMismatch indicates Pairwise received views of different
	// lengths.
	ErrLengthMismatch = errors.New("metric: pairwise requires equal-length views")

	// ErrEmptyView indicates a zero-length view was passed to a distance
	// computation.
	ErrEmptyView = errors.New("metric: view must be non-empty")
)

// Sequence is the minimal read contract a distance computation needs: an
// indexable run of scalars. *tsview.View satisfies it directly; group
// centroids (plain []float64 buffers with no backing dataset) satisfy it
// via a thin wrapper, letting the same Pairwise/Warped code compare a
// dataset view against a centroid without forcing the centroid into the
// dataset's storage.
type Sequence interface {
	Len() int
	Get(i int) float64
}

// Metric is the capability every distance metric must supply.
type Metric interface {
	// Name returns the metric's registry key, e.g. "euclidean".
	Name() string

	// Init returns the accumulator's identity value for a fresh computation.
	Init() float64

	// Reduce combines the accumulator of the chosen predecessor cell with
	// the per-element contribution of scalars x and y, producing the new
	// accumulator value.
	Reduce(prevAcc, x, y float64) float64

	// Norm finalizes an accumulator, built over `length` element
	// contributions, into a comparable scalar distance. Used directly for
	// the pairwise (equal-length) path with length = the shared length,
	// and for the DTW path with length = max(len(a), len(b)).
	Norm(acc float64, length int) float64
}

// InverseNormer is the optional capability a Metric may expose: the
// inverse of Norm, letting callers pre-transform a dropout threshold once
// and compare it directly against the raw accumulator on every step,
// instead of calling Norm on every step.
type InverseNormer interface {
	// InverseNorm maps a finalized distance `d` (for a view of the given
	// length) back to the raw accumulator value that would produce it.
	InverseNorm(d float64, length int) float64
}

var registry = map[string]Metric{}

// Register adds a Metric to the package registry under its own Name().
// Intended to be called from package-level init() in the files defining
// concrete metrics; not part of the public API surface most callers use.
func Register(m Metric) {
	registry[m.Name()] = m
}

// Lookup returns the registered Metric for name, or ErrUnknownMetric.
func Lookup(name string) (Metric, error) {
	m, ok := registry[name]
	if !ok {
		return nil, ErrUnknownMetric
	}

	return m, nil
}

func init() {
	Register(euclideanMetric{})
	Register(manhattanMetric{})
	Register(chebyshevMetric{})
}
