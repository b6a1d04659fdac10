// SPDX-License-Identifier: MIT
// Package dataset loads a tabular numeric file into a dense, immutable
// row-major matrix. It is the external collaborator named in the indexing
// specification: every subsequence the index groups and queries is a view
// into a Matrix produced here.
package dataset

import "fmt"

// matrixErrorf wraps an underlying error with Matrix method context,
// mirroring the teacher's Dense error-wrapping convention.
func matrixErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Matrix.%s(%d,%d): %w", method, row, col, err)
}

// Matrix is a dense, row-major, immutable-after-load table of 64-bit floats.
// Rows returns R; Cols returns L in the notation of the indexing spec.
//
// All subsequence views borrow its backing slice directly, so the slice is
// never reallocated or resized once returned by Load; cell values can
// still be overwritten in place (Set, or writes through Row).
type Matrix struct {
	rows, cols int
	data       []float64 // flat backing storage, length == rows*cols
}

// NewMatrix allocates a rows×cols Matrix initialized to zero. It is exported
// for callers (tests, builders) that assemble a Matrix without going through
// Load.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrColumnMismatch
	}

	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// Rows returns R, the number of time series stored.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns L, the length of every row.
func (m *Matrix) Cols() int { return m.cols }

// indexOf computes the flat offset for (row, col) or ErrOutOfRange.
func (m *Matrix) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.rows {
		return 0, matrixErrorf("At", row, col, ErrOutOfRange)
	}
	if col < 0 || col >= m.cols {
		return 0, matrixErrorf("At", row, col, ErrOutOfRange)
	}

	return row*m.cols + col, nil
}

// At returns the value at (row, col), or an error if out of range.
func (m *Matrix) At(row, col int) (float64, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set overwrites the value at (row, col). Used to fill a Matrix built with
// NewMatrix; Load and normalization write the backing storage directly,
// and index/group/metric code never calls it.
func (m *Matrix) Set(row, col int, v float64) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Row returns the backing slice for a full row, shared (not copied) with
// the Matrix, so writes through it change the Matrix. tsnorm.MinMax
// rescales rows this way; index/group/metric code only reads it.
func (m *Matrix) Row(row int) ([]float64, error) {
	if row < 0 || row >= m.rows {
		return nil, matrixErrorf("Row", row, 0, ErrOutOfRange)
	}
	start := row * m.cols

	return m.data[start : start+m.cols], nil
}

// MinMax scans every cell and returns the dataset-wide minimum and maximum.
// Returns an error if the matrix has no cells.
func (m *Matrix) MinMax() (min, max float64, err error) {
	if len(m.data) == 0 {
		return 0, 0, ErrEmptyFile
	}
	min, max = m.data[0], m.data[0]
	for _, v := range m.data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return min, max, nil
}
