package modfx

import (
	"testing"

	"github.com/cwbudde/algo-dsp/dsp/filter/design"
	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-modmatrix/dsp/modmatrix"
	"github.com/cwbudde/algo-modmatrix/internal/testutil"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	for _, m := range []Mode{Lowpass, Highpass, Bandpass, Notch} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseMode("allpass")
	require.Error(t, err)
	assert.Equal(t, "Mode(9)", Mode(9).String())
}

func TestFilterRetunesOnSet(t *testing.T) {
	t.Parallel()

	f, err := NewFilter(sampleRate, Highpass, 1000, 0.707)
	require.NoError(t, err)
	assert.Equal(t, design.Highpass(1000, 0.707, sampleRate), f.Coefficients())

	require.NoError(t, f.SetParameter("freq", modmatrix.Fixed(250)))
	assert.Equal(t, design.Highpass(250, 0.707, sampleRate), f.Coefficients())

	src := testutil.NewSource("lfo", 4000, nil)
	require.NoError(t, f.SetParameter("q", modmatrix.Live(src)))
	require.NoError(t, f.ProcessInPlace(make([]float64, 8)))
	assert.Equal(t, design.Highpass(250, 100, sampleRate), f.Coefficients())
	assert.Equal(t, "Filter(highpass 250 Hz)", f.String())
}

func TestFilterLowpassAttenuatesHighTone(t *testing.T) {
	t.Parallel()

	f, err := NewFilter(sampleRate, Lowpass, 200, 0.707)
	require.NoError(t, err)

	high := testutil.DeterministicSine(10000, sampleRate, 1, 4096)
	for _, block := range testutil.Blocks(high, 256) {
		require.NoError(t, f.ProcessInPlace(block))
	}

	assert.Less(t, vecmath.MaxAbs(high[2048:]), 0.01)
}
