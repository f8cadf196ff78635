package modfx

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/filter/moog"
)

// Moog is a ladder lowpass with parameters freq (Hz), res [0, 4] and drive.
type Moog struct {
	base
	fx *moog.Filter
}

func NewMoog(sampleRate float64) (*Moog, error) {
	fx, err := moog.New(sampleRate)
	if err != nil {
		return nil, err
	}

	b, err := newBase("moog",
		param("freq", 1, 0.45*sampleRate, fx.SetCutoffHz, fx.CutoffHz()),
		param("res", 0, 4, fx.SetResonance, fx.Resonance()),
		param("drive", 0.1, 24, fx.SetDrive, fx.Drive()),
	)
	if err != nil {
		return nil, err
	}

	return &Moog{base: b, fx: fx}, nil
}

func (m *Moog) ProcessInPlace(buf []float64) error {
	err := m.refresh()
	m.fx.ProcessInPlace(buf)

	return err
}

func (m *Moog) Reset() { m.fx.Reset() }

func (m *Moog) String() string {
	return fmt.Sprintf("Moog(%g Hz)", m.fx.CutoffHz())
}
