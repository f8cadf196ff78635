package modfx

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/effects/modulation"
)

// Phaser is an allpass-cascade phaser with parameters rate (Hz), minfreq,
// maxfreq (Hz), feedback and mix. The stage count is fixed at construction.
type Phaser struct {
	base
	fx *modulation.Phaser
}

// NewPhaser creates a phaser with the given number of allpass stages in [1, 12].
func NewPhaser(sampleRate float64, stages int) (*Phaser, error) {
	fx, err := modulation.NewPhaser(sampleRate, modulation.WithPhaserStages(stages))
	if err != nil {
		return nil, err
	}

	// The engine stores a new range before checking it against Nyquist, so
	// the upper bound is enforced here by clamping.
	nyquist := 0.48 * sampleRate
	b, err := newBase("phaser",
		param("rate", 0.01, 20, fx.SetRateHz, fx.RateHz()),
		param("minfreq", 20, nyquist, func(v float64) error {
			return fx.SetFrequencyRangeHz(v, fx.MaxFrequencyHz())
		}, fx.MinFrequencyHz()),
		param("maxfreq", 20, nyquist, func(v float64) error {
			return fx.SetFrequencyRangeHz(fx.MinFrequencyHz(), v)
		}, fx.MaxFrequencyHz()),
		param("feedback", -0.99, 0.99, fx.SetFeedback, fx.Feedback()),
		param("mix", 0, 1, fx.SetMix, fx.Mix()),
	)
	if err != nil {
		return nil, err
	}

	return &Phaser{base: b, fx: fx}, nil
}

func (p *Phaser) ProcessInPlace(buf []float64) error {
	return errors.Join(p.refresh(), p.fx.ProcessInPlace(buf))
}

func (p *Phaser) Reset() { p.fx.Reset() }

// Stages returns the number of allpass stages.
func (p *Phaser) Stages() int { return p.fx.Stages() }

func (p *Phaser) String() string {
	return fmt.Sprintf("Phaser(%d stages, %g Hz)", p.fx.Stages(), p.fx.RateHz())
}
