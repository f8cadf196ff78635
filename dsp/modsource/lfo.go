package modsource

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-modmatrix/dsp/modmatrix"
)

// Waveform selects the LFO shape.
type Waveform int

const (
	WavePulse Waveform = iota
	WaveTriangle
	WaveSawUp
	WaveSawDown
	WaveSine
)

func (w Waveform) String() string {
	switch w {
	case WavePulse:
		return "pulse"
	case WaveTriangle:
		return "triangle"
	case WaveSawUp:
		return "saw-up"
	case WaveSawDown:
		return "saw-down"
	case WaveSine:
		return "sine"
	default:
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
}

// ParseWaveform returns the Waveform named s, as printed by String.
func ParseWaveform(s string) (Waveform, error) {
	for w := WavePulse; w <= WaveSine; w++ {
		if w.String() == s {
			return w, nil
		}
	}

	return 0, fmt.Errorf("unknown lfo waveform: %q", s)
}

const (
	defaultLFOFreqHz = 1.0
	defaultLFODuty   = 0.5
	minLFODuty       = 0.01
	maxLFODuty       = 0.99
)

// LFOOption mutates LFO construction parameters.
type LFOOption func(*lfoConfig) error

type lfoConfig struct {
	freqHz float64
	phase  float64
	duty   float64
	wave   Waveform
	mul    float64
	add    float64
}

func defaultLFOConfig() lfoConfig {
	return lfoConfig{
		freqHz: defaultLFOFreqHz,
		duty:   defaultLFODuty,
		wave:   WaveSine,
		mul:    1,
	}
}

// WithLFOFrequencyHz sets the oscillation rate in Hz (>= 0).
func WithLFOFrequencyHz(freqHz float64) LFOOption {
	return func(cfg *lfoConfig) error {
		if freqHz < 0 || math.IsNaN(freqHz) || math.IsInf(freqHz, 0) {
			return fmt.Errorf("lfo frequency must be >= 0 and finite: %f", freqHz)
		}

		cfg.freqHz = freqHz

		return nil
	}
}

// WithLFOPhase sets the phase offset in cycles [0, 1].
func WithLFOPhase(phase float64) LFOOption {
	return func(cfg *lfoConfig) error {
		if phase < 0 || phase > 1 || math.IsNaN(phase) {
			return fmt.Errorf("lfo phase must be in [0, 1]: %f", phase)
		}

		cfg.phase = phase

		return nil
	}
}

// WithLFODuty sets the active fraction of each period in [0.01, 0.99].
func WithLFODuty(duty float64) LFOOption {
	return func(cfg *lfoConfig) error {
		if duty < minLFODuty || duty > maxLFODuty || math.IsNaN(duty) {
			return fmt.Errorf("lfo duty must be in [%g, %g]: %f", minLFODuty, maxLFODuty, duty)
		}

		cfg.duty = duty

		return nil
	}
}

// WithLFOWaveform selects the shape.
func WithLFOWaveform(w Waveform) LFOOption {
	return func(cfg *lfoConfig) error {
		if w < WavePulse || w > WaveSine {
			return fmt.Errorf("lfo waveform out of range: %d", int(w))
		}

		cfg.wave = w

		return nil
	}
}

// WithLFOScale sets the output scaling: out = wave*mul + add.
func WithLFOScale(mul, add float64) LFOOption {
	return func(cfg *lfoConfig) error {
		if math.IsNaN(mul) || math.IsInf(mul, 0) || math.IsNaN(add) || math.IsInf(add, 0) {
			return fmt.Errorf("lfo scale must be finite: mul=%f add=%f", mul, add)
		}

		cfg.mul = mul
		cfg.add = add

		return nil
	}
}

// LFO is a block-rate pulse-train oscillator. Within the duty fraction of each
// period it traces a unipolar shape in [0, 1]; for the rest of the period it
// outputs 0. The shape is then scaled by mul and offset by add.
type LFO struct {
	sampleRate float64
	params     *modmatrix.ParamTable
	phase      float64
	out        float64
}

// NewLFO creates an LFO with practical defaults and optional overrides.
func NewLFO(sampleRate float64, opts ...LFOOption) (*LFO, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("lfo sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultLFOConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	l := &LFO{sampleRate: sampleRate, params: modmatrix.NewParamTable()}
	l.params.MustDefine(modmatrix.Param{Name: "freq", Min: 0, Max: sampleRate / 2}, cfg.freqHz)
	l.params.MustDefine(modmatrix.Param{Name: "phase", Min: 0, Max: 1}, cfg.phase)
	l.params.MustDefine(modmatrix.Param{Name: "duty", Min: minLFODuty, Max: maxLFODuty}, cfg.duty)
	l.params.MustDefine(modmatrix.Param{Name: "type", Min: float64(WavePulse), Max: float64(WaveSine)}, float64(cfg.wave))
	l.params.MustDefine(modmatrix.Param{Name: "mul"}, cfg.mul)
	l.params.MustDefine(modmatrix.Param{Name: "add"}, cfg.add)
	l.out = l.eval()

	return l, nil
}

func (l *LFO) Parameters() []string { return l.params.Parameters() }

func (l *LFO) Parameter(name string) (modmatrix.Value, error) { return l.params.Parameter(name) }

func (l *LFO) SetParameter(name string, v modmatrix.Value) error {
	return l.params.SetParameter(name, v)
}

// Output returns the value computed by the last Tick.
func (l *LFO) Output() float64 { return l.out }

// Waveform returns the shape currently in effect.
func (l *LFO) Waveform() Waveform {
	return Waveform(math.Round(l.params.Float("type")))
}

// Tick refreshes live parameters, latches the output for the coming block and
// advances the phase by frames samples. A rejected live value keeps the last
// applied one and is reported.
func (l *LFO) Tick(frames int) error {
	err := l.params.Refresh()
	l.out = l.eval()

	if frames > 0 {
		l.phase += l.params.Float("freq") * float64(frames) / l.sampleRate
		l.phase -= math.Floor(l.phase)
	}

	return err
}

// Reset rewinds the phase to zero.
func (l *LFO) Reset() {
	l.phase = 0
	l.out = l.eval()
}

func (l *LFO) String() string {
	return fmt.Sprintf("LFO(%s, %g Hz)", l.Waveform(), l.params.Float("freq"))
}

func (l *LFO) eval() float64 {
	p := l.phase + l.params.Float("phase")
	p -= math.Floor(p)

	return shape(l.Waveform(), p, l.params.Float("duty"))*l.params.Float("mul") + l.params.Float("add")
}

// shape evaluates w at phase p in [0, 1) compressed into the first duty
// fraction of the period.
func shape(w Waveform, p, duty float64) float64 {
	if p >= duty {
		return 0
	}

	x := core.Clamp(p/duty, 0, 1)

	switch w {
	case WavePulse:
		return 1
	case WaveTriangle:
		return 1 - math.Abs(2*x-1)
	case WaveSawUp:
		return x
	case WaveSawDown:
		return 1 - x
	default:
		return 0.5 - 0.5*math.Cos(2*math.Pi*x)
	}
}
