// SPDX-License-Identifier: MIT
package tsview

import "errors"

var (
	// ErrNilDataset indicates a view was requested against a nil dataset.
	ErrNilDataset = errors.New("tsview: dataset is nil")

	// ErrOutOfRange indicates start/length fall outside the dataset's bounds.
	ErrOutOfRange = errors.New("tsview: view out of range")

	// ErrTooShort indicates a requested length is below the minimum of 2.
	ErrTooShort = errors.New("tsview: length must be >= 2")
)
