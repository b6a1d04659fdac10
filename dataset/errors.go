// SPDX-License-Identifier: MIT
package dataset

import "errors"

// Sentinel errors for dataset loading and access.
var (
	// ErrOpenFailed indicates the source file could not be opened.
	ErrOpenFailed = errors.New("dataset: cannot open file")

	// ErrReadFailed indicates an I/O error while reading the source file.
	ErrReadFailed = errors.New("dataset: read failed")

	// ErrEmptyFile indicates the source file produced zero usable rows.
	ErrEmptyFile = errors.New("dataset: no rows loaded")

	// ErrColumnMismatch indicates two rows disagree on column count.
	ErrColumnMismatch = errors.New("dataset: mismatched column count")

	// ErrBadValue indicates a cell could not be parsed as a 64-bit float.
	ErrBadValue = errors.New("dataset: non-numeric value")

	// ErrOutOfRange indicates a row or column index outside the matrix bounds.
	ErrOutOfRange = errors.New("dataset: index out of range")
)
