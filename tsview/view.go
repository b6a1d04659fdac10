// SPDX-License-Identifier: MIT
// Package tsview defines a lightweight, non-owning view into a dataset
// matrix, plus the lazily-built Keogh envelope used by the DTW lower bound.
package tsview

import (
	"fmt"

	"github.com/onexAdditional/dtwindex/dataset"
)

// View is the tuple (dataset, row, start, length) described by the indexing
// specification. It borrows the dataset's backing storage; its lifetime is
// bounded by the Matrix it points into. Views are cheap to copy (no backing
// array of their own) and safe to share across goroutines for Get, Values
// and String; Envelope stores its memo in the view without locking.
type View struct {
	ds     *dataset.Matrix
	row    int
	start  int
	length int
	env    *Envelope // lazily built, memoized against the radius it was built with
}

// New constructs a View (ds, row, start, length). Bounds are checked here,
// once, at construction; Get never re-validates.
func New(ds *dataset.Matrix, row, start, length int) (*View, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	if length < 2 {
		return nil, ErrTooShort
	}
	if row < 0 || row >= ds.Rows() {
		return nil, fmt.Errorf("tsview.New: row %d: %w", row, ErrOutOfRange)
	}
	if start < 0 || start+length > ds.Cols() {
		return nil, fmt.Errorf("tsview.New: start=%d length=%d: %w", start, length, ErrOutOfRange)
	}

	return &View{ds: ds, row: row, start: start, length: length}, nil
}

// Len returns the view's length.
func (v *View) Len() int { return v.length }

// Row returns the dataset row this view was taken from.
func (v *View) Row() int { return v.row }

// Start returns the view's starting column within its dataset row.
func (v *View) Start() int { return v.start }

// Get returns the i-th element of the view (0 <= i < Len()).
func (v *View) Get(i int) float64 {
	x, err := v.ds.At(v.row, v.start+i)
	if err != nil {
		// Len() was bounds-checked at construction; reaching here means a
		// caller passed an out-of-range i, a programmer error.
		panic(fmt.Sprintf("tsview: Get(%d) out of range for view of length %d", i, v.length))
	}

	return x
}

// Values materializes the view's elements into a fresh slice.
func (v *View) Values() []float64 {
	out := make([]float64, v.length)
	for i := range out {
		out[i] = v.Get(i)
	}

	return out
}

// Sub returns a new View over [start, end) of the receiver's own index
// space, sharing the same underlying dataset.
func (v *View) Sub(start, end int) (*View, error) {
	if start < 0 || end > v.length || start >= end {
		return nil, fmt.Errorf("tsview.Sub(%d,%d): %w", start, end, ErrOutOfRange)
	}

	return New(v.ds, v.row, v.start+start, end-start)
}

// String enumerates the view's values, e.g. "[1, 2, 3]".
func (v *View) String() string {
	s := "["
	for i := 0; i < v.length; i++ {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%g", v.Get(i))
	}

	return s + "]"
}
