// SPDX-License-Identifier: MIT
// Package session exposes the whole index as a small integer-handle API:
// load a dataset, optionally normalize and group it, then query it by
// best match or k-nearest-neighbors — the shape a CLI or an embedding
// host wants, instead of requiring callers to wire dataset, metric,
// group, and index types together themselves.
//
// A Session guards its resource table with a sync.RWMutex, the same
// coarse per-structure locking style the dataset this project is modeled
// on uses for its graph state, rather than locking each resource
// individually.
package session

import (
	"context"
	"io"
	"sync"

	"github.com/onexAdditional/dtwindex/config"
	"github.com/onexAdditional/dtwindex/dataset"
	"github.com/onexAdditional/dtwindex/group"
	"github.com/onexAdditional/dtwindex/groupfile"
	"github.com/onexAdditional/dtwindex/index"
	"github.com/onexAdditional/dtwindex/tsnorm"
	"github.com/onexAdditional/dtwindex/tsview"
	"github.com/rs/zerolog"
)

// Handle identifies one loaded dataset (and its optional group index)
// within a Session. Handles are never reused within a session's lifetime.
type Handle int

// resource bundles a loaded dataset with the group index built over it,
// if any.
type resource struct {
	ds   *dataset.Matrix
	path string
	gs   *index.GroupSpace
}

// Info describes a loaded dataset, as returned by DatasetInfo.
type Info struct {
	Path    string
	Rows    int
	Cols    int
	Grouped bool
}

// Session holds every dataset and group index loaded by one caller.
type Session struct {
	mu        sync.RWMutex
	resources map[Handle]*resource
	nextID    Handle
	cfg       config.Config
	log       zerolog.Logger
}

// New returns an empty Session logging through log. A zero zerolog.Logger
// (zerolog.Nop()) is a valid, silent choice.
func New(log zerolog.Logger) *Session {
	return &Session{
		resources: make(map[Handle]*resource),
		nextID:    1,
		cfg:       config.DefaultConfig(),
		log:       log,
	}
}

// SetWarpingBandRatio updates the warping-band ratio applied to every
// GroupDataset or LoadGroups call made after this one. Already-built
// group indices keep the ratio they were built with.
func (s *Session) SetWarpingBandRatio(ratio float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = config.New(config.WithWarpingBandRatio(ratio))
	s.log.Info().Float64("ratio", ratio).Msg("warping band ratio updated")
}

// LoadDataset parses path into a new in-memory dataset and returns a
// handle to it.
func (s *Session) LoadDataset(path string, opts ...dataset.LoadOption) (Handle, error) {
	ds, err := dataset.Load(path, opts...)
	if err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("load dataset failed")

		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.nextID
	s.nextID++
	s.resources[h] = &resource{ds: ds, path: path}

	s.log.Info().Int("handle", int(h)).Str("path", path).Int("rows", ds.Rows()).Int("cols", ds.Cols()).Msg("dataset loaded")

	return h, nil
}

// UnloadDataset discards a handle and everything built over it.
func (s *Session) UnloadDataset(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resources[h]; !ok {
		return ErrUnknownHandle
	}
	delete(s.resources, h)
	s.log.Info().Int("handle", int(h)).Msg("dataset unloaded")

	return nil
}

// DatasetInfo describes the dataset behind h.
func (s *Session) DatasetInfo(h Handle) (Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resources[h]
	if !ok {
		return Info{}, ErrUnknownHandle
	}

	return Info{Path: r.path, Rows: r.ds.Rows(), Cols: r.ds.Cols(), Grouped: r.gs != nil}, nil
}

// NormalizeDataset min-max rescales the dataset behind h in place.
func (s *Session) NormalizeDataset(h Handle) (lo, hi float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resources[h]
	if !ok {
		return 0, 0, ErrUnknownHandle
	}

	lo, hi, err = tsnorm.MinMax(r.ds)
	if err != nil {
		s.log.Error().Err(err).Int("handle", int(h)).Msg("normalize dataset failed")

		return 0, 0, err
	}
	s.log.Info().Int("handle", int(h)).Float64("min", lo).Float64("max", hi).Msg("dataset normalized")

	return lo, hi, nil
}

// GroupDataset clusters every subsequence length of the dataset behind h
// under metricName and threshold tau, using up to workers goroutines.
func (s *Session) GroupDataset(h Handle, metricName string, tau float64, workers int) error {
	s.mu.Lock()
	r, ok := s.resources[h]
	cfg := s.cfg
	s.mu.Unlock()
	if !ok {
		return ErrUnknownHandle
	}

	gs, err := index.NewGroupSpace(r.ds, metricName, cfg, tau)
	if err != nil {
		return err
	}
	if err := gs.Group(workers); err != nil {
		s.log.Error().Err(err).Int("handle", int(h)).Msg("group dataset failed")

		return err
	}

	s.mu.Lock()
	r.gs = gs
	s.mu.Unlock()

	s.log.Info().Int("handle", int(h)).Str("metric", metricName).Float64("tau", tau).Int("lengths", len(gs.Lengths())).Msg("dataset grouped")

	return nil
}

// SaveGroups writes the group index built over h to w.
func (s *Session) SaveGroups(h Handle, w io.Writer) error {
	s.mu.RLock()
	r, ok := s.resources[h]
	s.mu.RUnlock()
	if !ok {
		return ErrUnknownHandle
	}
	if r.gs == nil {
		return ErrNotGrouped
	}

	return groupfile.Save(w, r.gs)
}

// LoadGroups reads a previously saved group index from r into h, replacing
// any group index already built over it.
func (s *Session) LoadGroups(h Handle, r io.Reader) error {
	s.mu.Lock()
	res, ok := s.resources[h]
	cfg := s.cfg
	s.mu.Unlock()
	if !ok {
		return ErrUnknownHandle
	}

	gs, err := groupfile.Load(r, res.ds, cfg)
	if err != nil {
		s.log.Error().Err(err).Int("handle", int(h)).Msg("load groups failed")

		return err
	}

	s.mu.Lock()
	res.gs = gs
	s.mu.Unlock()
	s.log.Info().Int("handle", int(h)).Int("lengths", len(gs.Lengths())).Msg("groups loaded")

	return nil
}

// BestMatch finds the closest subsequence anywhere in the grouped index
// for h to the query subsequence [row, start, start+length).
func (s *Session) BestMatch(ctx context.Context, h Handle, row, start, length int) (group.Member, int, float64, error) {
	s.mu.RLock()
	r, ok := s.resources[h]
	s.mu.RUnlock()
	if !ok {
		return group.Member{}, 0, 0, ErrUnknownHandle
	}
	if r.gs == nil {
		return group.Member{}, 0, 0, ErrNotGrouped
	}

	query, err := tsview.New(r.ds, row, start, length)
	if err != nil {
		return group.Member{}, 0, 0, err
	}

	return r.gs.BestMatch(ctx, query)
}

// KNN finds the k closest subsequences anywhere in the grouped index for h
// to the query subsequence [row, start, start+length).
func (s *Session) KNN(ctx context.Context, h Handle, row, start, length, k int) ([]index.Match, error) {
	s.mu.RLock()
	r, ok := s.resources[h]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownHandle
	}
	if r.gs == nil {
		return nil, ErrNotGrouped
	}

	query, err := tsview.New(r.ds, row, start, length)
	if err != nil {
		return nil, err
	}

	return r.gs.KNN(ctx, query, k)
}
