package metric

import (
	"math"
	"testing"

	"github.com/onexAdditional/dtwindex/config"
	"github.com/stretchr/testify/require"
)

func TestGetDistanceEqualLength(t *testing.T) {
	cfg := config.DefaultConfig()
	a := viewOf(t, []float64{1, 2, 3, 4})
	b := viewOf(t, []float64{1, 2, 3, 5})

	pairwise, err := GetDistance("manhattan")
	require.NoError(t, err)
	d, err := pairwise(a, b, cfg, math.Inf(1))
	require.NoError(t, err)
	require.InDelta(t, 0.25, d, 1e-9)

	warped, err := GetDistance("manhattan_dtw")
	require.NoError(t, err)
	d, err = warped(a, b, cfg, math.Inf(1))
	require.NoError(t, err)
	require.LessOrEqual(t, d, 0.25+1e-9)
}

func TestGetDistanceEuclideanCascade(t *testing.T) {
	cfg := config.DefaultConfig()
	a := viewOf(t, []float64{1, 2, 2, 4, 5, 6, 7})
	b := viewOf(t, []float64{1, 2, 4, 5, 5, 6, 7})

	warped, err := GetDistance("euclidean_dtw")
	require.NoError(t, err)
	d, err := warped(a, b, cfg, math.Inf(1))
	require.NoError(t, err)
	require.GreaterOrEqual(t, d, 0.0)
}
