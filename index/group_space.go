// SPDX-License-Identifier: MIT
// Package index implements the cross-length global group space: a
// collection of per-length group.Set instances, queried in nearest-length
// first traverse order so a query of length q can match against
// subsequences of a nearby but different length without scanning every
// length in the dataset.
package index

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/onexAdditional/dtwindex/config"
	"github.com/onexAdditional/dtwindex/dataset"
	"github.com/onexAdditional/dtwindex/group"
	"github.com/onexAdditional/dtwindex/metric"
	"github.com/onexAdditional/dtwindex/tsview"
)

// GroupSpace owns one group.Set per subsequence length present in a
// dataset, built and queried under a single metric and warping
// configuration. Grouping may run concurrently across lengths; queries
// take a read lock so they never race a concurrent (re-)Group call.
type GroupSpace struct {
	ds     *dataset.Matrix
	m      metric.Metric
	cfg    config.Config
	tau    float64
	maxLen int

	mu   sync.RWMutex
	sets map[int]*group.Set
}

// NewGroupSpace resolves metricName and returns a GroupSpace ready to be
// populated by Group. It holds no groups until Group is called.
func NewGroupSpace(ds *dataset.Matrix, metricName string, cfg config.Config, tau float64) (*GroupSpace, error) {
	m, err := metric.Lookup(metricName)
	if err != nil {
		return nil, err
	}

	return &GroupSpace{
		ds:     ds,
		m:      m,
		cfg:    cfg,
		tau:    tau,
		maxLen: ds.Cols(),
		sets:   make(map[int]*group.Set),
	}, nil
}

// Metric returns the distance metric name this space groups and queries
// under.
func (gs *GroupSpace) Metric() string { return gs.m.Name() }

// MetricValue returns the resolved metric.Metric this space groups and
// queries under, for callers (such as the group-index file loader) that
// need to rebuild a group.Set directly.
func (gs *GroupSpace) MetricValue() metric.Metric { return gs.m }

// Rows returns the row count of the dataset this space was built over.
func (gs *GroupSpace) Rows() int { return gs.ds.Rows() }

// LoadSets installs pre-built per-length sets directly, bypassing Group.
// Used by the group-index file loader to reconstruct a space without
// re-running clustering.
func (gs *GroupSpace) LoadSets(sets map[int]*group.Set) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.sets = sets
}

// Tau returns the clustering threshold this space groups under.
func (gs *GroupSpace) Tau() float64 { return gs.tau }

// Set returns the group.Set built for a given length, or nil if Group has
// not produced one (either not yet run, or the dataset has no row wide
// enough for that length).
func (gs *GroupSpace) Set(length int) *group.Set {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	return gs.sets[length]
}

// Lengths returns every length currently grouped, in ascending order.
func (gs *GroupSpace) Lengths() []int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	out := make([]int, 0, len(gs.sets))
	for length := range gs.sets {
		out = append(out, length)
	}
	sort.Ints(out)

	return out
}

// Group builds a group.Set for every subsequence length from 2 up to the
// dataset's column count, fanning the work out across up to `workers`
// goroutines. Replaces any sets from a prior Group call.
func (gs *GroupSpace) Group(workers int) error {
	if workers < 1 {
		workers = 1
	}

	type outcome struct {
		length int
		set    *group.Set
		err    error
	}

	lengths := make(chan int)
	results := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for length := range lengths {
				s, err := group.Generate(gs.ds, length, gs.m, gs.cfg, gs.tau)
				results <- outcome{length: length, set: s, err: err}
			}
		}()
	}

	go func() {
		for length := 2; length <= gs.maxLen; length++ {
			lengths <- length
		}
		close(lengths)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	built := make(map[int]*group.Set, gs.maxLen)
	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		built[r.length] = r.set
	}
	if firstErr != nil {
		return firstErr
	}

	gs.mu.Lock()
	gs.sets = built
	gs.mu.Unlock()

	return nil
}

// admissible reports whether a member of the given length may legally
// align against a query of length q under this space's warping
// configuration: |length-q| <= r(min(length,q)).
func (gs *GroupSpace) admissible(length, q int) bool {
	diff := length - q
	if diff < 0 {
		diff = -diff
	}

	return diff <= gs.cfg.Band(min(length, q))
}

// traverseOrder lists every length admissible against a query of length
// q, nearest-first: q, q-1, q+1, q-2, q+2, .... Because the warping band
// r(n) is non-decreasing in n, admissibility can only fail permanently as
// a candidate length moves further from q in either direction, so the
// scan below is safe to stop the first time both directions are
// simultaneously inadmissible.
func (gs *GroupSpace) traverseOrder(q int) []int {
	var out []int
	if q >= 2 && q <= gs.maxLen && gs.admissible(q, q) {
		out = append(out, q)
	}
	for delta := 1; ; delta++ {
		lo, hi := q-delta, q+delta
		loOK := lo >= 2 && gs.admissible(lo, q)
		hiOK := hi <= gs.maxLen && gs.admissible(hi, q)
		if !loOK && !hiOK {
			break
		}
		if loOK {
			out = append(out, lo)
		}
		if hiOK {
			out = append(out, hi)
		}
	}

	return out
}

// checkDone returns ctx.Err() if ctx is non-nil and already cancelled.
func checkDone(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// BestMatch traverses every admissible length nearest-first, narrowing to
// a single best GROUP by centroid distance across every length visited,
// then resolves that one group's intra-group best member exactly once.
// ctx may be nil; when non-nil it is checked between lengths so a
// long-running traversal can be cancelled.
func (gs *GroupSpace) BestMatch(ctx context.Context, query *tsview.View) (group.Member, int, float64, error) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	if len(gs.sets) == 0 {
		return group.Member{}, 0, 0, ErrNotGrouped
	}

	bestDist := math.Inf(1)
	var bestGroup *group.Group
	var bestSet *group.Set
	bestLength := -1

	for _, length := range gs.traverseOrder(query.Len()) {
		if err := checkDone(ctx); err != nil {
			return group.Member{}, 0, 0, err
		}

		s, ok := gs.sets[length]
		if !ok {
			continue
		}

		g, dist, err := s.BestGroup(query, bestDist)
		if err != nil {
			if errors.Is(err, group.ErrEmptySet) || errors.Is(err, group.ErrNoMatch) {
				continue
			}
			return group.Member{}, 0, 0, err
		}
		bestDist, bestGroup, bestSet, bestLength = dist, g, s, length
	}

	if bestGroup == nil {
		return group.Member{}, 0, 0, ErrNoMatch
	}

	member, dist, err := bestSet.BestMatch(query, bestGroup, math.Inf(1))
	if err != nil {
		if errors.Is(err, group.ErrNoMatch) {
			return group.Member{}, 0, 0, ErrNoMatch
		}
		return group.Member{}, 0, 0, err
	}

	return member, bestLength, dist, nil
}

// knnSelection records one group selected by a length's SelectGroups call,
// tagged with the length and set it came from so the worst selection can
// later be refined and the others' members recovered.
type knnSelection struct {
	set    *group.Set
	length int
	sel    group.Selection
}

// KNN iterates lengths 2..maxLen in ascending order, threading a single
// running quota through each length's SelectGroups call so groups are
// picked up greedily across the whole space. Once every length has
// contributed, the single worst (furthest-centroid) selected group is
// refined through KBest with k set to the leftover quota plus that
// group's size, which ranks all of its members; every other selected group
// contributes all of its members unrefined, in reverse-insertion order.
// The result orders every "better" group's members before the worst
// group's refined members, so it is not sorted by distance overall, and
// may contain more than k matches.
func (gs *GroupSpace) KNN(ctx context.Context, query *tsview.View, k int) ([]Match, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}

	gs.mu.RLock()
	defer gs.mu.RUnlock()

	if len(gs.sets) == 0 {
		return nil, ErrNotGrouped
	}

	lengths := make([]int, 0, len(gs.sets))
	for length := range gs.sets {
		lengths = append(lengths, length)
	}
	sort.Ints(lengths)

	var selections []knnSelection
	kRemaining := k
	for _, length := range lengths {
		if err := checkDone(ctx); err != nil {
			return nil, err
		}
		if kRemaining <= 0 {
			break
		}

		s := gs.sets[length]
		picked, after, err := s.SelectGroups(query, kRemaining)
		if err != nil {
			return nil, err
		}
		for _, sel := range picked {
			selections = append(selections, knnSelection{set: s, length: length, sel: sel})
		}
		kRemaining = after
	}

	if len(selections) == 0 {
		return nil, ErrNoMatch
	}

	worstIdx := 0
	for i, sc := range selections {
		if sc.sel.Dist > selections[worstIdx].sel.Dist {
			worstIdx = i
		}
	}
	worst := selections[worstIdx]

	dist, err := metric.GetQueryDistance(gs.m)
	if err != nil {
		return nil, err
	}

	var out []Match
	for i, sc := range selections {
		if i == worstIdx {
			continue
		}
		for _, mem := range sc.set.MembersLIFO(sc.sel.Group) {
			v, err := tsview.New(gs.ds, mem.Row, mem.Start, sc.length)
			if err != nil {
				return nil, err
			}
			d, err := dist(query, v, gs.cfg, math.Inf(1))
			if err != nil {
				return nil, err
			}
			out = append(out, Match{Member: mem, Length: sc.length, Dist: d})
		}
	}

	refineK := kRemaining + worst.sel.Group.Count()
	refined, err := worst.set.KBest(query, worst.sel.Group, refineK, math.Inf(1))
	if err != nil {
		return nil, err
	}
	for _, m := range refined {
		out = append(out, Match{Member: m.Member, Length: worst.length, Dist: m.Dist})
	}

	return out, nil
}
