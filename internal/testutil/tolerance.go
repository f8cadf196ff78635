package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-modmatrix/dsp/modmatrix"
)

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()

	for i, v := range data {
		require.Falsef(t, math.IsNaN(v) || math.IsInf(v, 0), "index %d: non-finite value %v", i, v)
	}
}

// RequireFixed fails t unless parameter of obj holds the fixed value want.
func RequireFixed(t testing.TB, obj modmatrix.Modulatable, parameter string, want float64) {
	t.Helper()

	v, err := obj.Parameter(parameter)
	require.NoError(t, err)

	require.Falsef(t, v.IsLive(), "%s is live (%s), want fixed %v", parameter, v, want)
	require.InDelta(t, want, v.Float(), 1e-12, parameter)
}

// RequireLive fails t unless parameter of obj follows src.
func RequireLive(t testing.TB, obj modmatrix.Modulatable, parameter string, src modmatrix.SignalSource) {
	t.Helper()

	v, err := obj.Parameter(parameter)
	require.NoError(t, err)

	require.Truef(t, v.IsLive(), "%s is fixed (%s), want live", parameter, v)
	require.Truef(t, v.Source() == src, "%s follows %s", parameter, v)
}
