package modsource_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-modmatrix/dsp/modmatrix"
	"github.com/cwbudde/algo-modmatrix/dsp/modsource"
	"github.com/cwbudde/algo-modmatrix/internal/testutil"
)

func TestFollowerInstantTimes(t *testing.T) {
	t.Parallel()

	f, err := modsource.NewFollower(1000)
	require.NoError(t, err)
	require.NoError(t, f.SetParameter("attack", modmatrix.Fixed(0)))
	require.NoError(t, f.SetParameter("release", modmatrix.Fixed(0)))

	f.Feed(testutil.DC(-0.5, 64))
	assert.InDelta(t, 0.5, f.Envelope(), 1e-12)

	f.Feed(testutil.DC(0, 64))
	assert.InDelta(t, 0.0, f.Envelope(), 1e-12)
}

func TestFollowerSmoothing(t *testing.T) {
	t.Parallel()

	f, err := modsource.NewFollower(1000)
	require.NoError(t, err)
	require.NoError(t, f.SetParameter("attack", modmatrix.Fixed(10)))
	require.NoError(t, f.SetParameter("mul", modmatrix.Fixed(2)))
	require.NoError(t, f.SetParameter("add", modmatrix.Fixed(1)))

	f.Feed(testutil.DC(1, 10))
	want := 1 - math.Exp(-1)
	assert.InDelta(t, want, f.Envelope(), 1e-12)
	assert.InDelta(t, 2*want+1, f.Output(), 1e-12)

	f.Reset()
	assert.InDelta(t, 1.0, f.Output(), 1e-12)
}

func TestFollowerTracksSineRMS(t *testing.T) {
	t.Parallel()

	f, err := modsource.NewFollower(48000)
	require.NoError(t, err)

	for _, block := range testutil.Blocks(testutil.DeterministicSine(1000, 48000, 1, 48000), 480) {
		f.Feed(block)
	}

	assert.InDelta(t, 1/math.Sqrt2, f.Envelope(), 1e-3)
}

func TestFollowerRejectsBadSampleRate(t *testing.T) {
	t.Parallel()

	_, err := modsource.NewFollower(math.NaN())
	require.Error(t, err)
}
