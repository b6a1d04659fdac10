// SPDX-License-Identifier: MIT
package index

import "github.com/onexAdditional/dtwindex/group"

// Match pairs a group.Member with the subsequence length it was matched
// at and its distance to the query, as returned by KNN.
type Match struct {
	Member group.Member
	Length int
	Dist   float64
}
