// SPDX-License-Identifier: MIT
package group

import (
	"container/heap"
	"math"
	"sort"

	"github.com/onexAdditional/dtwindex/config"
	"github.com/onexAdditional/dtwindex/dataset"
	"github.com/onexAdditional/dtwindex/metric"
	"github.com/onexAdditional/dtwindex/tsview"
)

// arenaSlot is one entry in a Set's flat member arena: the member it
// identifies, and the arena index of the previous member absorbed into
// the same group (-1 if it was the first).
type arenaSlot struct {
	member Member
	prev   int
}

// Set holds every group clustering the fixed-length subsequences of one
// dataset at one length, under one metric, warping-band configuration,
// and clustering threshold tau.
type Set struct {
	length int
	ds     *dataset.Matrix
	metric metric.Metric
	cfg    config.Config
	tau    float64
	groups []*Group
	arena  []arenaSlot
}

// Length returns the subsequence length this Set clusters.
func (s *Set) Length() int { return s.length }

// Metric returns the distance metric this Set was built and queried with.
func (s *Set) Metric() metric.Metric { return s.metric }

// Tau returns the clustering threshold this Set was generated with.
func (s *Set) Tau() float64 { return s.tau }

// Groups returns every group in the Set, in creation order.
func (s *Set) Groups() []*Group { return s.groups }

// Members returns g's members in the order they were absorbed.
func (s *Set) Members(g *Group) []Member {
	out := make([]Member, 0, g.count)
	for idx := g.head; idx >= 0; idx = s.arena[idx].prev {
		out = append(out, s.arena[idx].member)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out
}

// MembersLIFO returns g's members in reverse-insertion order: the most
// recently absorbed member first. Cross-length k-NN merging emits a
// group's members in this order rather than the absorption order Members
// returns.
func (s *Set) MembersLIFO(g *Group) []Member {
	out := make([]Member, 0, g.count)
	for idx := g.head; idx >= 0; idx = s.arena[idx].prev {
		out = append(out, s.arena[idx].member)
	}

	return out
}

// GroupData is the persisted shape of one group, used to reconstruct a
// Set from a saved group index without re-running clustering.
type GroupData struct {
	Centroid []float64
	Members  []Member
}

// Generate clusters every length-`length` subsequence of ds into groups
// under metric m, warping configuration cfg, and threshold tau: each
// subsequence joins the nearest existing group whose centroid distance is
// below tau, or seeds a new group when none qualifies. Subsequences are
// visited row-major, so the resulting groups and their member order are
// deterministic for a given dataset.
func Generate(ds *dataset.Matrix, length int, m metric.Metric, cfg config.Config, tau float64) (*Set, error) {
	if length < 2 {
		return nil, ErrInvalidLength
	}

	s := &Set{length: length, ds: ds, metric: m, cfg: cfg, tau: tau}

	maxStart := ds.Cols() - length
	if maxStart < 0 {
		return s, nil
	}

	for row := 0; row < ds.Rows(); row++ {
		for start := 0; start <= maxStart; start++ {
			v, err := tsview.New(ds, row, start, length)
			if err != nil {
				return nil, err
			}
			if err := s.assign(v, Member{Row: row, Start: start}); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

// FromGroups rebuilds a Set directly from previously computed group data,
// bypassing clustering. Used by the group-index file loader.
func FromGroups(ds *dataset.Matrix, length int, m metric.Metric, cfg config.Config, tau float64, data []GroupData) *Set {
	s := &Set{length: length, ds: ds, metric: m, cfg: cfg, tau: tau}
	for _, gd := range data {
		g := &Group{id: len(s.groups), centroid: append([]float64(nil), gd.Centroid...), count: len(gd.Members), head: -1}
		for _, mem := range gd.Members {
			idx := len(s.arena)
			s.arena = append(s.arena, arenaSlot{member: mem, prev: g.head})
			g.head = idx
		}
		s.groups = append(s.groups, g)
	}

	return s
}

// assign finds v's nearest existing group under the pairwise (unwarped)
// distance, matching the equal-length comparison clustering is specified
// to use; if its distance is below tau, v is absorbed into it, otherwise v
// seeds a new singleton group.
func (s *Set) assign(v *tsview.View, mem Member) error {
	bestIdx := -1
	bestDist := math.Inf(1)
	for i, g := range s.groups {
		d, err := metric.Pairwise(v, centroidSeq(g.centroid), s.metric, s.tau)
		if err != nil {
			return err
		}
		if d < bestDist {
			bestDist, bestIdx = d, i
		}
	}

	slotIdx := len(s.arena)
	if bestIdx >= 0 && bestDist < s.tau {
		g := s.groups[bestIdx]
		s.arena = append(s.arena, arenaSlot{member: mem, prev: g.head})
		g.head = slotIdx
		g.absorb(v.Values())

		return nil
	}

	centroid := append([]float64(nil), v.Values()...)
	g := &Group{id: len(s.groups), centroid: centroid, count: 1, head: slotIdx}
	s.arena = append(s.arena, arenaSlot{member: mem, prev: -1})
	s.groups = append(s.groups, g)

	return nil
}

// queryDistance resolves the set's metric's warped DistanceFunc from the
// registry and evaluates it for one query/candidate pair, so every
// best-match/k-NN primitive below routes through the same name-addressed
// cascade dispatch as metric.GetDistance, instead of calling Warped
// directly and bypassing the LB-Keogh pre-filter for euclidean.
func (s *Set) queryDistance(query *tsview.View, candidate metric.Sequence, dropout float64) (float64, error) {
	fn, err := metric.GetQueryDistance(s.metric)
	if err != nil {
		return 0, err
	}

	return fn(query, candidate, s.cfg, dropout)
}

// BestGroup returns the group whose centroid is nearest query, pruning
// groups whose centroid distance is provably at or beyond dropout. Pass
// math.Inf(1) for an unconstrained scan. ErrEmptySet if the Set has no
// groups.
func (s *Set) BestGroup(query *tsview.View, dropout float64) (*Group, float64, error) {
	if len(s.groups) == 0 {
		return nil, 0, ErrEmptySet
	}

	var best *Group
	bestDist := dropout
	for _, g := range s.groups {
		d, err := s.queryDistance(query, centroidSeq(g.centroid), bestDist)
		if err != nil {
			return nil, 0, err
		}
		if d < bestDist {
			bestDist, best = d, g
		}
	}
	if best == nil {
		return nil, 0, ErrNoMatch
	}

	return best, bestDist, nil
}

// BestMatch scans every member of g against query, returning the closest
// one found strictly within dropout. ErrNoMatch if none qualifies.
func (s *Set) BestMatch(query *tsview.View, g *Group, dropout float64) (Member, float64, error) {
	bestDist := dropout
	var best Member
	found := false

	for idx := g.head; idx >= 0; idx = s.arena[idx].prev {
		slot := s.arena[idx]
		v, err := tsview.New(s.ds, slot.member.Row, slot.member.Start, s.length)
		if err != nil {
			return Member{}, 0, err
		}
		d, err := s.queryDistance(query, v, bestDist)
		if err != nil {
			return Member{}, 0, err
		}
		if d < bestDist {
			bestDist, best, found = d, slot.member, true
		}
	}

	if !found {
		return Member{}, 0, ErrNoMatch
	}

	return best, bestDist, nil
}

// KBest scans every member of g against query, returning up to k matches
// within dropout, sorted by ascending distance. It maintains a bounded
// max-heap of size k so the dropout bound tightens to the k-th best
// distance found so far as the scan proceeds.
func (s *Set) KBest(query *tsview.View, g *Group, k int, dropout float64) ([]Match, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}

	h := &matchHeap{}
	heap.Init(h)
	bound := dropout

	for idx := g.head; idx >= 0; idx = s.arena[idx].prev {
		slot := s.arena[idx]
		v, err := tsview.New(s.ds, slot.member.Row, slot.member.Start, s.length)
		if err != nil {
			return nil, err
		}
		d, err := s.queryDistance(query, v, bound)
		if err != nil {
			return nil, err
		}
		if math.IsInf(d, 1) {
			continue
		}

		if h.Len() < k {
			heap.Push(h, Match{Member: slot.member, Dist: d})
			if h.Len() == k {
				bound = (*h)[0].Dist
			}
		} else if d < (*h)[0].Dist {
			heap.Pop(h)
			heap.Push(h, Match{Member: slot.member, Dist: d})
			bound = (*h)[0].Dist
		}
	}

	out := make([]Match, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(Match)
	}

	return out, nil
}

// Selection is one group chosen by SelectGroups, alongside its distance
// to the query that selected it.
type Selection struct {
	Group *Group
	Dist  float64
}

// SelectGroups contributes this Set's share of a hierarchical k-NN query:
// it ranks every group by centroid distance to query, nearest first, and
// greedily selects groups in that order until their combined membership
// covers kRemaining, or every group has been taken. It reports the
// selected groups (nearest first) and the unmet quota left over for the
// next length's call — never negative.
func (s *Set) SelectGroups(query *tsview.View, kRemaining int) ([]Selection, int, error) {
	if len(s.groups) == 0 || kRemaining <= 0 {
		return nil, kRemaining, nil
	}

	scored := make([]Selection, len(s.groups))
	for i, g := range s.groups {
		d, err := s.queryDistance(query, centroidSeq(g.centroid), math.Inf(1))
		if err != nil {
			return nil, kRemaining, err
		}
		scored[i] = Selection{Group: g, Dist: d}
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].Dist < scored[j].Dist })

	var selected []Selection
	remaining := kRemaining
	for _, sc := range scored {
		if remaining <= 0 {
			break
		}
		selected = append(selected, sc)
		remaining -= sc.Group.Count()
	}
	if remaining < 0 {
		remaining = 0
	}

	return selected, remaining, nil
}
