package modfx

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/effects/modulation"
)

// AutoWah is an envelope-following band-pass with parameters minfreq,
// maxfreq (Hz), q, sensitivity, attack, release (ms) and mix.
type AutoWah struct {
	base
	fx *modulation.AutoWah
}

// NewAutoWah creates an auto-wah with the engine defaults.
func NewAutoWah(sampleRate float64) (*AutoWah, error) {
	fx, err := modulation.NewAutoWah(sampleRate)
	if err != nil {
		return nil, err
	}

	nyquist := 0.48 * sampleRate
	b, err := newBase("autowah",
		param("minfreq", 20, nyquist, func(v float64) error {
			return fx.SetFrequencyRangeHz(v, fx.MaxFreqHz())
		}, fx.MinFreqHz()),
		param("maxfreq", 20, nyquist, func(v float64) error {
			return fx.SetFrequencyRangeHz(fx.MinFreqHz(), v)
		}, fx.MaxFreqHz()),
		param("q", 0.1, 20, fx.SetQ, fx.Q()),
		param("sensitivity", 0.01, 50, fx.SetSensitivity, fx.Sensitivity()),
		param("attack", 0, 1000, fx.SetAttackMs, fx.AttackMs()),
		param("release", 0, 5000, fx.SetReleaseMs, fx.ReleaseMs()),
		param("mix", 0, 1, fx.SetMix, fx.Mix()),
	)
	if err != nil {
		return nil, err
	}

	return &AutoWah{base: b, fx: fx}, nil
}

func (a *AutoWah) ProcessInPlace(buf []float64) error {
	return errors.Join(a.refresh(), a.fx.ProcessInPlace(buf))
}

func (a *AutoWah) Reset() { a.fx.Reset() }

// CenterHz returns the band-pass center reached at the end of the last block.
func (a *AutoWah) CenterHz() float64 { return a.fx.CurrentCenterHz() }

func (a *AutoWah) String() string {
	return fmt.Sprintf("AutoWah(%g-%g Hz)", a.fx.MinFreqHz(), a.fx.MaxFreqHz())
}
