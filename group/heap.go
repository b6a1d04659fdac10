// SPDX-License-Identifier: MIT
package group

// matchHeap is a max-heap of Match, ordered by Dist descending, so the
// worst of the k matches kept so far always sits at the root and can be
// evicted in O(log k) the moment a closer member is found. This mirrors
// the lazy-decrease-key container/heap usage in the shortest-path solver
// this package is modeled on, adapted from a min-heap over growing
// distances to a bounded max-heap over the k smallest distances seen.
type matchHeap []Match

// Len returns the number of matches currently held.
func (h matchHeap) Len() int { return len(h) }

// Less orders by distance descending, so Pop yields the largest first.
func (h matchHeap) Less(i, j int) bool { return h[i].Dist > h[j].Dist }

// Swap exchanges two heap slots.
func (h matchHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// Push adds a new element x onto the heap. Called by heap.Push; x must be
// a Match.
func (h *matchHeap) Push(x interface{}) { *h = append(*h, x.(Match)) }

// Pop removes and returns the largest-distance element. Called by
// heap.Pop.
func (h *matchHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
