// SPDX-License-Identifier: MIT
package tsnorm

import (
	"testing"

	"github.com/onexAdditional/dtwindex/dataset"
	"github.com/stretchr/testify/require"
)

func TestMinMaxRescalesToUnitRange(t *testing.T) {
	m, err := dataset.NewMatrix(2, 3)
	require.NoError(t, err)
	rows := [][]float64{{0, 5, 10}, {10, 0, 5}}
	for r, row := range rows {
		for c, v := range row {
			require.NoError(t, m.Set(r, c, v))
		}
	}

	lo, hi, err := MinMax(m)
	require.NoError(t, err)
	require.Equal(t, 0.0, lo)
	require.Equal(t, 10.0, hi)

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.InDelta(t, 0.0, v, 1e-9)
	v, err = m.At(0, 2)
	require.NoError(t, err)
	require.InDelta(t, 1.0, v, 1e-9)
	v, err = m.At(1, 1)
	require.NoError(t, err)
	require.InDelta(t, 0.0, v, 1e-9)
	v, err = m.At(1, 2)
	require.NoError(t, err)
	require.InDelta(t, 0.5, v, 1e-9)
}

func TestMinMaxConstantDataset(t *testing.T) {
	m, err := dataset.NewMatrix(2, 2)
	require.NoError(t, err)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			require.NoError(t, m.Set(r, c, 7.0))
		}
	}

	_, _, err = MinMax(m)
	require.ErrorIs(t, err, ErrConstantDataset)
}
