// SPDX-License-Identifier: MIT
package group

import "errors"

// Sentinel errors for group construction and querying.
var (
	// ErrInvalidLength indicates a Set was asked to cluster subsequences of
	// a length shorter than 2.
	ErrInvalidLength = errors.New("group: length must be at least 2")

	// ErrEmptySet indicates a query was issued against a Set with no
	// groups, e.g. because the source dataset has no rows long enough to
	// produce a subsequence of the Set's length.
	ErrEmptySet = errors.New("group: set has no groups")

	// ErrNoMatch indicates every member of a group was pruned by the
	// dropout bound before a finite distance was found.
	ErrNoMatch = errors.New("group: no member within dropout bound")

	// ErrInvalidK indicates KBest was asked for a non-positive k.
	ErrInvalidK = errors.New("group: k must be positive")
)
