package modmatrix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-modmatrix/dsp/modmatrix"
	"github.com/cwbudde/algo-modmatrix/internal/testutil"
)

func TestParamTableDefine(t *testing.T) {
	t.Parallel()

	tbl := modmatrix.NewParamTable()
	require.NoError(t, tbl.Define(modmatrix.Param{Name: "freq", Min: 20, Max: 20000}, 440))
	require.NoError(t, tbl.Define(modmatrix.Param{Name: "q"}, 0.7))

	require.Error(t, tbl.Define(modmatrix.Param{Name: "freq"}, 1))
	require.Error(t, tbl.Define(modmatrix.Param{Name: ""}, 1))
	require.Error(t, tbl.Define(modmatrix.Param{Name: "bad", Min: 2, Max: 1}, 1))
	require.Error(t, tbl.Define(modmatrix.Param{Name: "fails", Apply: func(float64) error {
		return errors.New("nope")
	}}, 1))

	assert.Equal(t, []string{"freq", "q"}, tbl.Parameters())
	assert.Panics(t, func() { tbl.MustDefine(modmatrix.Param{Name: "q"}, 0) })
}

func TestParamTableSetFixed(t *testing.T) {
	t.Parallel()

	var applied []float64

	tbl := modmatrix.NewParamTable()
	tbl.MustDefine(modmatrix.Param{
		Name: "mix", Min: 0, Max: 1,
		Apply: func(v float64) error {
			applied = append(applied, v)
			return nil
		},
	}, 0.5)

	require.NoError(t, tbl.SetParameter("mix", modmatrix.Fixed(1.5)))
	assert.Equal(t, []float64{0.5, 1}, applied)
	assert.InDelta(t, 1, tbl.Float("mix"), 1e-12)

	v, err := tbl.Parameter("mix")
	require.NoError(t, err)
	assert.True(t, v.Equal(modmatrix.Fixed(1.5)), "stored value is kept unclamped")

	require.ErrorIs(t, tbl.SetParameter("wet", modmatrix.Fixed(1)), modmatrix.ErrInvalidParameter)
	_, err = tbl.Parameter("wet")
	require.ErrorIs(t, err, modmatrix.ErrInvalidParameter)
	assert.Zero(t, tbl.Float("wet"))
}

func TestParamTableSetFixedRejected(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	reject := false

	tbl := modmatrix.NewParamTable()
	tbl.MustDefine(modmatrix.Param{Name: "rate", Apply: func(float64) error {
		if reject {
			return boom
		}

		return nil
	}}, 2)

	reject = true
	require.ErrorIs(t, tbl.SetParameter("rate", modmatrix.Fixed(3)), boom)

	v, err := tbl.Parameter("rate")
	require.NoError(t, err)
	assert.True(t, v.Equal(modmatrix.Fixed(2)))
	assert.InDelta(t, 2, tbl.Float("rate"), 1e-12)
}

func TestParamTableRefresh(t *testing.T) {
	t.Parallel()

	var last float64

	calls := 0
	src := testutil.NewSource("lfo", 5000, nil)

	tbl := modmatrix.NewParamTable()
	tbl.MustDefine(modmatrix.Param{
		Name: "freq", Min: 20, Max: 2000,
		Apply: func(v float64) error {
			calls++
			last = v

			return nil
		},
	}, 440)

	require.NoError(t, tbl.SetParameter("freq", modmatrix.Live(src)))
	assert.Equal(t, 1, calls, "live values apply on refresh only")

	require.NoError(t, tbl.Refresh())
	assert.InDelta(t, 2000, last, 1e-12)
	assert.InDelta(t, 2000, tbl.Float("freq"), 1e-12)

	require.NoError(t, tbl.Refresh())
	assert.Equal(t, 2, calls, "unchanged output is not re-applied")

	src.Out = 100
	require.NoError(t, tbl.Refresh())
	assert.InDelta(t, 100, last, 1e-12)

	v, err := tbl.Parameter("freq")
	require.NoError(t, err)
	assert.True(t, v.Equal(modmatrix.Live(src)))
}

func TestParamTableRefreshKeepsLastGoodValue(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := testutil.NewSource("lfo", 3, nil)

	tbl := modmatrix.NewParamTable()
	tbl.MustDefine(modmatrix.Param{Name: "depth", Apply: func(v float64) error {
		if v > 5 {
			return boom
		}

		return nil
	}}, 1)
	tbl.MustDefine(modmatrix.Param{Name: "mix"}, 0)

	require.NoError(t, tbl.SetParameter("depth", modmatrix.Live(src)))
	require.NoError(t, tbl.SetParameter("mix", modmatrix.Live(src)))
	require.NoError(t, tbl.Refresh())
	assert.InDelta(t, 3, tbl.Float("depth"), 1e-12)

	src.Out = 9
	err := tbl.Refresh()
	require.ErrorIs(t, err, boom)
	assert.InDelta(t, 3, tbl.Float("depth"), 1e-12)
	assert.InDelta(t, 9, tbl.Float("mix"), 1e-12)
}

func TestValue(t *testing.T) {
	t.Parallel()

	src := testutil.NewSource("lfo", 0.25, nil)

	var zero modmatrix.Value
	assert.False(t, zero.IsLive())
	assert.Nil(t, zero.Source())
	assert.True(t, zero.Equal(modmatrix.Fixed(0)))

	live := modmatrix.Live(src)
	assert.True(t, live.IsLive())
	assert.InDelta(t, 0.25, live.Float(), 1e-12)
	assert.False(t, live.Equal(modmatrix.Fixed(0.25)))
	assert.Equal(t, "<Source(lfo)>", live.String())
	assert.Equal(t, "440", modmatrix.Fixed(440).String())
	assert.Equal(t, "0.5", modmatrix.Fixed(0.5).String())
}
