package modfx

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/effects/modulation"
)

// Flanger is a modulatable flanger with parameters rate (Hz), depth (ms),
// delay (ms), feedback and mix. Delay plus depth may not exceed 10 ms.
type Flanger struct {
	base
	fx *modulation.Flanger
}

// NewFlanger creates a flanger with the engine defaults.
func NewFlanger(sampleRate float64) (*Flanger, error) {
	fx, err := modulation.NewFlanger(sampleRate)
	if err != nil {
		return nil, err
	}

	b, err := newBase("flanger",
		param("rate", 0.01, 20, fx.SetRateHz, fx.RateHz()),
		param("depth", 0, 9.9, msToSeconds(fx.SetDepthSeconds), fx.DepthSeconds()*1000),
		param("delay", 0.1, 10, msToSeconds(fx.SetBaseDelaySeconds), fx.BaseDelaySeconds()*1000),
		param("feedback", -0.99, 0.99, fx.SetFeedback, fx.Feedback()),
		param("mix", 0, 1, fx.SetMix, fx.Mix()),
	)
	if err != nil {
		return nil, err
	}

	return &Flanger{base: b, fx: fx}, nil
}

func (f *Flanger) ProcessInPlace(buf []float64) error {
	return errors.Join(f.refresh(), f.fx.ProcessInPlace(buf))
}

func (f *Flanger) Reset() { f.fx.Reset() }

func (f *Flanger) String() string {
	return fmt.Sprintf("Flanger(%g Hz)", f.fx.RateHz())
}
