// SPDX-License-Identifier: MIT
package index

import "errors"

// Sentinel errors for GroupSpace construction and querying.
var (
	// ErrNoMatch indicates a query traversed every admissible length
	// without finding a member within the requested dropout bound.
	ErrNoMatch = errors.New("index: no match within any admissible length")

	// ErrInvalidK indicates KNN was asked for a non-positive k.
	ErrInvalidK = errors.New("index: k must be positive")

	// ErrNotGrouped indicates a query was issued before Group built any
	// per-length sets.
	ErrNotGrouped = errors.New("index: group space has not been grouped yet")
)
