// SPDX-License-Identifier: MIT
package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeTempDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "series.tsv")
	content := "1 2 3 4\n1 2 3 4.1\n9 9 9 9\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadInfoUnload(t *testing.T) {
	s := New(zerolog.Nop())
	path := writeTempDataset(t)

	h, err := s.LoadDataset(path)
	require.NoError(t, err)

	info, err := s.DatasetInfo(h)
	require.NoError(t, err)
	require.Equal(t, 3, info.Rows)
	require.Equal(t, 4, info.Cols)
	require.False(t, info.Grouped)

	require.NoError(t, s.UnloadDataset(h))
	_, err = s.DatasetInfo(h)
	require.ErrorIs(t, err, ErrUnknownHandle)
}

func TestUnknownHandleErrors(t *testing.T) {
	s := New(zerolog.Nop())
	_, _, err := s.NormalizeDataset(99)
	require.ErrorIs(t, err, ErrUnknownHandle)
	err = s.GroupDataset(99, "euclidean", 1.0, 2)
	require.ErrorIs(t, err, ErrUnknownHandle)
}

func TestGroupBestMatchAndKNN(t *testing.T) {
	s := New(zerolog.Nop())
	path := writeTempDataset(t)
	h, err := s.LoadDataset(path)
	require.NoError(t, err)

	require.NoError(t, s.GroupDataset(h, "euclidean", 1.0, 2))

	info, err := s.DatasetInfo(h)
	require.NoError(t, err)
	require.True(t, info.Grouped)

	member, length, dist, err := s.BestMatch(context.Background(), h, 0, 0, 4)
	require.NoError(t, err)
	require.Equal(t, 4, length)
	require.Equal(t, 0, member.Row)
	require.InDelta(t, 0.0, dist, 1e-9)

	matches, err := s.KNN(context.Background(), h, 0, 0, 4, 2)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(matches), 2)
}

func TestBestMatchWithoutGroupingFails(t *testing.T) {
	s := New(zerolog.Nop())
	path := writeTempDataset(t)
	h, err := s.LoadDataset(path)
	require.NoError(t, err)

	_, _, _, err = s.BestMatch(context.Background(), h, 0, 0, 4)
	require.ErrorIs(t, err, ErrNotGrouped)
}

func TestSaveAndLoadGroupsRoundTrip(t *testing.T) {
	s := New(zerolog.Nop())
	path := writeTempDataset(t)
	h, err := s.LoadDataset(path)
	require.NoError(t, err)
	require.NoError(t, s.GroupDataset(h, "euclidean", 1.0, 2))

	var buf bytes.Buffer
	require.NoError(t, s.SaveGroups(h, &buf))

	h2, err := s.LoadDataset(path)
	require.NoError(t, err)
	require.NoError(t, s.LoadGroups(h2, &buf))

	member, length, dist, err := s.BestMatch(context.Background(), h2, 0, 0, 4)
	require.NoError(t, err)
	require.Equal(t, 4, length)
	require.Equal(t, 0, member.Row)
	require.InDelta(t, 0.0, dist, 1e-9)
}

func TestNormalizeDataset(t *testing.T) {
	s := New(zerolog.Nop())
	path := writeTempDataset(t)
	h, err := s.LoadDataset(path)
	require.NoError(t, err)

	lo, hi, err := s.NormalizeDataset(h)
	require.NoError(t, err)
	require.Equal(t, 1.0, lo)
	require.Equal(t, 9.0, hi)
}
