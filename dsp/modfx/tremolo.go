package modfx

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/effects/modulation"
)

// Tremolo is an amplitude modulator with parameters rate (Hz), depth,
// smoothing (ms) and mix.
type Tremolo struct {
	base
	fx *modulation.Tremolo
}

// NewTremolo creates a tremolo with the engine defaults.
func NewTremolo(sampleRate float64) (*Tremolo, error) {
	fx, err := modulation.NewTremolo(sampleRate)
	if err != nil {
		return nil, err
	}

	b, err := newBase("tremolo",
		param("rate", 0.01, 50, fx.SetRateHz, fx.RateHz()),
		param("depth", 0, 1, fx.SetDepth, fx.Depth()),
		param("smoothing", 0, 200, fx.SetSmoothingMs, fx.SmoothingMs()),
		param("mix", 0, 1, fx.SetMix, fx.Mix()),
	)
	if err != nil {
		return nil, err
	}

	return &Tremolo{base: b, fx: fx}, nil
}

func (t *Tremolo) ProcessInPlace(buf []float64) error {
	return errors.Join(t.refresh(), t.fx.ProcessInPlace(buf))
}

func (t *Tremolo) Reset() { t.fx.Reset() }

func (t *Tremolo) String() string {
	return fmt.Sprintf("Tremolo(%g Hz)", t.fx.RateHz())
}
