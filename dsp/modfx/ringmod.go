package modfx

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/effects/modulation"
)

// RingMod multiplies the input with a sine carrier. Parameters: carrier (Hz), mix.
type RingMod struct {
	base
	fx *modulation.RingModulator
}

func NewRingMod(sampleRate float64) (*RingMod, error) {
	fx, err := modulation.NewRingModulator(sampleRate)
	if err != nil {
		return nil, err
	}

	b, err := newBase("ringmod",
		param("carrier", 0.1, 0.49*sampleRate, fx.SetCarrierHz, fx.CarrierHz()),
		param("mix", 0, 1, fx.SetMix, fx.Mix()),
	)
	if err != nil {
		return nil, err
	}

	return &RingMod{base: b, fx: fx}, nil
}

func (r *RingMod) ProcessInPlace(buf []float64) error {
	err := r.refresh()
	r.fx.ProcessInPlace(buf)

	return err
}

func (r *RingMod) Reset() { r.fx.Reset() }

func (r *RingMod) String() string {
	return fmt.Sprintf("RingMod(%g Hz)", r.fx.CarrierHz())
}
