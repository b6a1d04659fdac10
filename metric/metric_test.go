package metric

import (
	"math"
	"testing"

	"github.com/onexAdditional/dtwindex/dataset"
	"github.com/onexAdditional/dtwindex/tsview"
	"github.com/stretchr/testify/require"
)

func viewOf(t *testing.T, values []float64) *tsview.View {
	t.Helper()
	m, err := dataset.NewMatrix(1, len(values))
	require.NoError(t, err)
	for i, v := range values {
		require.NoError(t, m.Set(0, i, v))
	}
	v, err := tsview.New(m, 0, 0, len(values))
	require.NoError(t, err)

	return v
}

func TestPairwiseScenarios(t *testing.T) {
	a := viewOf(t, []float64{1, 2, 3, 4, 5})
	b := viewOf(t, []float64{11, 2, 3, 4, 5})

	euclid, err := Lookup("euclidean")
	require.NoError(t, err)
	d, err := Pairwise(a, b, euclid, math.Inf(1))
	require.NoError(t, err)
	require.InDelta(t, 2.0, d, 1e-9)

	manhattan, err := Lookup("manhattan")
	require.NoError(t, err)
	d, err = Pairwise(a, b, manhattan, math.Inf(1))
	require.NoError(t, err)
	require.InDelta(t, 2.0, d, 1e-9)

	chebyshev, err := Lookup("chebyshev")
	require.NoError(t, err)
	d, err = Pairwise(a, b, chebyshev, math.Inf(1))
	require.NoError(t, err)
	require.InDelta(t, 10.0, d, 1e-9)
}

func TestPairwiseDropout(t *testing.T) {
	a := viewOf(t, []float64{1, 2, 3, 4, 5})
	b := viewOf(t, []float64{11, 2, 3, 4, 5})
	euclid, _ := Lookup("euclidean")

	d, err := Pairwise(a, b, euclid, 1.0)
	require.NoError(t, err)
	require.True(t, math.IsInf(d, 1))

	d, err = Pairwise(a, b, euclid, 3.0)
	require.NoError(t, err)
	require.InDelta(t, 2.0, d, 1e-9)
}

func TestPairwiseLengthMismatch(t *testing.T) {
	a := viewOf(t, []float64{1, 2})
	b := viewOf(t, []float64{1, 2, 3})
	m, _ := Lookup("euclidean")
	_, err := Pairwise(a, b, m, math.Inf(1))
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestWarpedTrivialAlignment(t *testing.T) {
	a := viewOf(t, []float64{2, 4})
	b := viewOf(t, []float64{2, 2, 2, 4, 4})

	for _, name := range []string{"euclidean", "manhattan", "chebyshev"} {
		m, err := Lookup(name)
		require.NoError(t, err)
		d, err := Warped(a, b, m, -1, math.Inf(1))
		require.NoError(t, err)
		require.InDeltaf(t, 0.0, d, 1e-9, "metric %s", name)
	}
}

func TestWarpedScenario4(t *testing.T) {
	a := viewOf(t, []float64{1, 2, 2, 4})
	b := viewOf(t, []float64{1, 2, 4, 5})

	euclid, _ := Lookup("euclidean")
	d, err := Warped(a, b, euclid, -1, math.Inf(1))
	require.NoError(t, err)
	require.InDelta(t, 0.25, d, 1e-9)

	manhattan, _ := Lookup("manhattan")
	d, err = Warped(a, b, manhattan, -1, math.Inf(1))
	require.NoError(t, err)
	require.InDelta(t, 0.25, d, 1e-9)

	chebyshev, _ := Lookup("chebyshev")
	d, err = Warped(a, b, chebyshev, -1, math.Inf(1))
	require.NoError(t, err)
	require.InDelta(t, 1.0, d, 1e-9)
}

func TestWarpedScenario5(t *testing.T) {
	a := viewOf(t, []float64{4, 3, 5, 3, 5, 3, 4})
	b := viewOf(t, []float64{4, 3, 3, 1, 1, 3, 4})

	euclid, _ := Lookup("euclidean")
	d, err := Warped(a, b, euclid, -1, math.Inf(1))
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(12)/7, d, 1e-9)

	manhattan, _ := Lookup("manhattan")
	d, err = Warped(a, b, manhattan, -1, math.Inf(1))
	require.NoError(t, err)
	require.InDelta(t, 8.0/7.0, d, 1e-9)

	chebyshev, _ := Lookup("chebyshev")
	d, err = Warped(a, b, chebyshev, -1, math.Inf(1))
	require.NoError(t, err)
	require.InDelta(t, 2.0, d, 1e-9)
}

func TestWarpedDropout(t *testing.T) {
	a := viewOf(t, []float64{2, 2, 2, 2})
	b := viewOf(t, []float64{20, 20, 20, 15})

	euclid, _ := Lookup("euclidean")
	d, err := Warped(a, b, euclid, -1, 5.0)
	require.NoError(t, err)
	require.True(t, math.IsInf(d, 1))
}

func TestWarpedBandConstraint(t *testing.T) {
	// A band of 1 keeps the path near the diagonal and forces it through
	// cells that cannot possibly align well; result should differ from the
	// unconstrained case (sanity: constrained distance >= unconstrained).
	a := viewOf(t, []float64{4, 3, 5, 3, 5, 3, 4})
	b := viewOf(t, []float64{4, 3, 3, 1, 1, 3, 4})
	euclid, _ := Lookup("euclidean")

	unconstrained, err := Warped(a, b, euclid, -1, math.Inf(1))
	require.NoError(t, err)
	constrained, err := Warped(a, b, euclid, 1, math.Inf(1))
	require.NoError(t, err)
	require.GreaterOrEqual(t, constrained, unconstrained)
}

func TestWarpedVsPairwiseUpperBound(t *testing.T) {
	a := viewOf(t, []float64{1, 2, 3, 4, 5})
	b := viewOf(t, []float64{11, 2, 3, 4, 5})
	for _, name := range []string{"euclidean", "manhattan", "chebyshev"} {
		m, _ := Lookup(name)
		pw, err := Pairwise(a, b, m, math.Inf(1))
		require.NoError(t, err)
		w, err := Warped(a, b, m, -1, math.Inf(1))
		require.NoError(t, err)
		require.LessOrEqualf(t, w, pw, "metric %s: warped must not exceed pairwise", name)
	}
}

func TestMetricSymmetryAndIdentity(t *testing.T) {
	x := viewOf(t, []float64{1, 5, 2, 9, 3})
	y := viewOf(t, []float64{4, 1, 7, 2, 8})
	for _, name := range []string{"euclidean", "manhattan", "chebyshev"} {
		m, _ := Lookup(name)
		dxx, err := Pairwise(x, x, m, math.Inf(1))
		require.NoError(t, err)
		require.InDeltaf(t, 0.0, dxx, 1e-9, "metric %s: d(x,x)", name)

		dxy, err := Pairwise(x, y, m, math.Inf(1))
		require.NoError(t, err)
		dyx, err := Pairwise(y, x, m, math.Inf(1))
		require.NoError(t, err)
		require.InDeltaf(t, dxy, dyx, 1e-9, "metric %s: symmetry", name)
		require.GreaterOrEqualf(t, dxy, 0.0, "metric %s: non-negative", name)
	}
}

func TestUnknownMetric(t *testing.T) {
	_, err := Lookup("cosine")
	require.ErrorIs(t, err, ErrUnknownMetric)

	_, err = GetDistance("cosine")
	require.ErrorIs(t, err, ErrUnknownMetric)
	_, err = GetDistance("cosine_dtw")
	require.ErrorIs(t, err, ErrUnknownMetric)
}
