// SPDX-License-Identifier: MIT
package index

import (
	"context"
	"testing"

	"github.com/onexAdditional/dtwindex/config"
	"github.com/onexAdditional/dtwindex/dataset"
	"github.com/onexAdditional/dtwindex/group"
	"github.com/onexAdditional/dtwindex/tsview"
	"github.com/stretchr/testify/require"
)

func matrixOf(t *testing.T, rows [][]float64) *dataset.Matrix {
	t.Helper()
	m, err := dataset.NewMatrix(len(rows), len(rows[0]))
	require.NoError(t, err)
	for r, row := range rows {
		for c, v := range row {
			require.NoError(t, m.Set(r, c, v))
		}
	}

	return m
}

func buildSpace(t *testing.T, ds *dataset.Matrix, tau float64) *GroupSpace {
	t.Helper()
	gs, err := NewGroupSpace(ds, "euclidean", config.DefaultConfig(), tau)
	require.NoError(t, err)
	require.NoError(t, gs.Group(2))

	return gs
}

func TestGroupPopulatesEveryLength(t *testing.T) {
	ds := matrixOf(t, [][]float64{
		{1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1},
	})
	gs := buildSpace(t, ds, 1.0)
	require.ElementsMatch(t, []int{2, 3, 4, 5}, gs.Lengths())
}

func TestBestMatchFindsExactMemberAtSameLength(t *testing.T) {
	ds := matrixOf(t, [][]float64{
		{1, 2, 3, 4, 5},
		{9, 9, 9, 9, 9},
	})
	gs := buildSpace(t, ds, 0.5)

	query, err := tsview.New(ds, 0, 0, 5)
	require.NoError(t, err)

	member, length, dist, err := gs.BestMatch(context.Background(), query)
	require.NoError(t, err)
	require.Equal(t, 5, length)
	require.Equal(t, 0, member.Row)
	require.InDelta(t, 0.0, dist, 1e-9)
}

func TestBestMatchErrorsBeforeGrouping(t *testing.T) {
	ds := matrixOf(t, [][]float64{{1, 2, 3, 4, 5}})
	gs, err := NewGroupSpace(ds, "euclidean", config.DefaultConfig(), 1.0)
	require.NoError(t, err)

	query, err := tsview.New(ds, 0, 0, 4)
	require.NoError(t, err)

	_, _, _, err = gs.BestMatch(context.Background(), query)
	require.ErrorIs(t, err, ErrNotGrouped)
}

func TestKNNRespectsK(t *testing.T) {
	ds := matrixOf(t, [][]float64{
		{1, 2, 3, 4},
		{1, 2, 3, 4.2},
		{1, 2, 3, 9},
		{100, 100, 100, 100},
	})
	gs := buildSpace(t, ds, 100.0)

	query, err := tsview.New(ds, 0, 0, 4)
	require.NoError(t, err)

	matches, err := gs.KNN(context.Background(), query, 2)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(matches), 2)

	rows := make([]int, len(matches))
	for i, m := range matches {
		rows[i] = m.Member.Row
	}
	require.Contains(t, rows, 0)
}

// TestKNNOrdersBetterGroupsBeforeWorst installs only the length-4 set of a
// dataset with three groups at that length (two members absorbed into the
// nearest group, two singletons), since a fully grouped space would let the
// length-2 groups fill the quota first, and requests enough matches to pull
// in the nearest group plus the worst examined one. The nearest group's
// members must precede the worst group's refined members, and must appear
// in reverse-insertion order rather than sorted by distance.
func TestKNNOrdersBetterGroupsBeforeWorst(t *testing.T) {
	ds := matrixOf(t, [][]float64{
		{1, 2, 3, 4},
		{1, 2, 3, 4.2},
		{1, 2, 3, 9},
		{100, 100, 100, 100},
	})
	gs, err := NewGroupSpace(ds, "euclidean", config.DefaultConfig(), 1.0)
	require.NoError(t, err)
	s, err := group.Generate(ds, 4, gs.MetricValue(), config.DefaultConfig(), 1.0)
	require.NoError(t, err)
	require.Len(t, s.Groups(), 3)
	gs.LoadSets(map[int]*group.Set{4: s})

	query, err := tsview.New(ds, 0, 0, 4)
	require.NoError(t, err)

	matches, err := gs.KNN(context.Background(), query, 3)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	require.Equal(t, 1, matches[0].Member.Row)
	require.Equal(t, 0, matches[1].Member.Row)
	require.Equal(t, 2, matches[2].Member.Row)
}

func TestKNNRejectsNonPositiveK(t *testing.T) {
	ds := matrixOf(t, [][]float64{{1, 2, 3, 4}})
	gs := buildSpace(t, ds, 1.0)
	query, err := tsview.New(ds, 0, 0, 4)
	require.NoError(t, err)

	_, err = gs.KNN(context.Background(), query, 0)
	require.ErrorIs(t, err, ErrInvalidK)
}

func TestTraverseOrderNearestFirstAndSymmetric(t *testing.T) {
	ds := matrixOf(t, [][]float64{{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}})
	gs, err := NewGroupSpace(ds, "euclidean", config.New(config.WithWarpingBandRatio(1.0)), 1.0)
	require.NoError(t, err)

	order := gs.traverseOrder(5)
	require.Equal(t, 5, order[0])

	prevDist := -1
	for _, length := range order {
		dist := length - 5
		if dist < 0 {
			dist = -dist
		}
		require.GreaterOrEqualf(t, dist, prevDist, "traverse order must move away from the query length monotonically")
		prevDist = dist
	}
}

func TestBestMatchCancellation(t *testing.T) {
	ds := matrixOf(t, [][]float64{{1, 2, 3, 4, 5}})
	gs := buildSpace(t, ds, 1.0)
	query, err := tsview.New(ds, 0, 0, 4)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, _, err = gs.BestMatch(ctx, query)
	require.ErrorIs(t, err, context.Canceled)
}
