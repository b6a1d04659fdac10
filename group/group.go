// SPDX-License-Identifier: MIT
// Package group implements the per-length clustering layer: subsequences
// of a single fixed length, drawn from a dataset, are incrementally
// assigned to groups by a threshold-tau nearest-centroid rule, then
// queried by nearest-group lookup, intra-group best match, and intra-group
// k-best.
//
// Each group's membership is threaded as an intrusive singly linked chain
// through a flat arena owned by the Set, rather than each group holding
// its own slice; this mirrors how the source keeps cluster membership as
// index chains over a shared backing store instead of per-cluster
// allocations.
package group

import "github.com/onexAdditional/dtwindex/metric"

// Member identifies one subsequence of the source dataset by row and
// start offset; its length is implicit in the owning Set.
type Member struct {
	Row, Start int
}

// Match pairs a Member with its distance to a query, as returned by
// BestMatch and KBest.
type Match struct {
	Member Member
	Dist   float64
}

// Group is a single cluster: a running centroid mean over every member
// ever absorbed into it, plus the arena index of its most recently
// absorbed member (the head of its intrusive chain).
type Group struct {
	id       int
	centroid []float64
	count    int
	head     int
}

// ID returns the group's index within its owning Set's group slice.
func (g *Group) ID() int { return g.id }

// Count returns the number of members assigned to the group.
func (g *Group) Count() int { return g.count }

// Centroid returns the group's running mean. The returned slice is
// shared with the Set's internal storage; callers must not mutate it.
func (g *Group) Centroid() []float64 { return g.centroid }

// absorb folds values into the running centroid mean in place using
// Welford's running-mean update, so no history of prior members is kept.
func (g *Group) absorb(values []float64) {
	g.count++
	for i, x := range values {
		g.centroid[i] += (x - g.centroid[i]) / float64(g.count)
	}
}

// centroidSeq adapts a raw centroid buffer to metric.Sequence, letting the
// distance package compare a dataset view against a centroid that has no
// backing dataset row of its own.
type centroidSeq []float64

func (c centroidSeq) Len() int          { return len(c) }
func (c centroidSeq) Get(i int) float64 { return c[i] }

var _ metric.Sequence = centroidSeq(nil)
