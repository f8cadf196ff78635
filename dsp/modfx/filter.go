package modfx

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
)

// Mode selects the biquad response of a Filter.
type Mode int

const (
	Lowpass Mode = iota
	Highpass
	Bandpass
	Notch
)

var modeNames = [...]string{"lowpass", "highpass", "bandpass", "notch"}

func (m Mode) String() string {
	if m < Lowpass || m > Notch {
		return fmt.Sprintf("Mode(%d)", int(m))
	}

	return modeNames[m]
}

// ParseMode returns the Mode named s.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}

	return 0, fmt.Errorf("unknown filter mode: %q", s)
}

func (m Mode) design(freq, q, sampleRate float64) biquad.Coefficients {
	switch m {
	case Highpass:
		return design.Highpass(freq, q, sampleRate)
	case Bandpass:
		return design.Bandpass(freq, q, sampleRate)
	case Notch:
		return design.Notch(freq, q, sampleRate)
	default:
		return design.Lowpass(freq, q, sampleRate)
	}
}

// Filter is an RBJ biquad with parameters freq (Hz) and q. Retuning keeps
// the section state so modulated sweeps stay continuous.
type Filter struct {
	base
	mode       Mode
	sampleRate float64
	section    *biquad.Section
	freq, q    float64
}

// NewFilter creates a Filter of the given mode.
func NewFilter(sampleRate float64, mode Mode, freq, q float64) (*Filter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("filter sample rate must be > 0 and finite: %f", sampleRate)
	}

	if mode < Lowpass || mode > Notch {
		return nil, fmt.Errorf("filter mode out of range: %d", int(mode))
	}

	f := &Filter{
		mode:       mode,
		sampleRate: sampleRate,
		section:    biquad.NewSection(biquad.Identity()),
		freq:       freq,
		q:          q,
	}

	b, err := newBase(mode.String(),
		param("freq", 10, 0.49*sampleRate, f.setFreq, freq),
		param("q", 0.1, 100, f.setQ, q),
	)
	if err != nil {
		return nil, err
	}

	f.base = b

	return f, nil
}

func (f *Filter) setFreq(v float64) error {
	f.freq = v
	f.retune()

	return nil
}

func (f *Filter) setQ(v float64) error {
	f.q = v
	f.retune()

	return nil
}

func (f *Filter) retune() {
	f.section.Coefficients = f.mode.design(f.freq, f.q, f.sampleRate)
}

// Mode returns the filter response.
func (f *Filter) Mode() Mode { return f.mode }

// Coefficients returns the section coefficients currently in use.
func (f *Filter) Coefficients() biquad.Coefficients { return f.section.Coefficients }

func (f *Filter) ProcessInPlace(buf []float64) error {
	err := f.refresh()
	f.section.ProcessBlock(buf)

	return err
}

func (f *Filter) Reset() { f.section.Reset() }

func (f *Filter) String() string {
	return fmt.Sprintf("Filter(%s %g Hz)", f.mode, f.freq)
}
