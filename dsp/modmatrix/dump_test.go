package modmatrix_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-modmatrix/dsp/modmatrix"
	"github.com/cwbudde/algo-modmatrix/internal/testutil"
)

func TestMatrixDumpEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Nothing", modmatrix.New().String())
}

func TestMatrixDump(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	require.NoError(t, r.m.Link("lfo", "filt", "freq"))
	require.NoError(t, r.m.Link("lfo", "filt", "q"))
	require.NoError(t, r.m.Link("lfo2", "lfo", "freq"))
	require.NoError(t, r.m.Link("filt", "amp", "gain"))

	want := strings.Join([]string{
		"lfo : Source(lfo)\n\tsource for: filt(freq), filt(q)\n\n\tdestination for: lfo2(freq)",
		"lfo2 : Source(lfo2)\n\tsource for: lfo(freq)\n\n\tdestination for: ",
		"filt : Source(filt)\n\tsource for: amp(gain)\n\n\tdestination for: lfo(freq), lfo(q)",
		"amp : Knob(amp)\n\tsource for: \n\n\tdestination for: filt(gain)",
	}, "\n\n")

	assert.Equal(t, want, r.m.String())
}

func TestMatrixDumpDescribesUnnamedTypes(t *testing.T) {
	t.Parallel()

	m := modmatrix.New()
	require.NoError(t, m.Add("k", bare{testutil.NewKnob("k", nil)}))

	assert.Contains(t, m.String(), "k : modmatrix_test.bare")
}

// bare hides the Knob's String method.
type bare struct{ k *testutil.Knob }

func (b bare) Parameters() []string { return b.k.Parameters() }

func (b bare) Parameter(name string) (modmatrix.Value, error) { return b.k.Parameter(name) }

func (b bare) SetParameter(name string, v modmatrix.Value) error { return b.k.SetParameter(name, v) }
