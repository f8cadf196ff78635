package patch

import (
	"math"

	"github.com/cwbudde/algo-modmatrix/dsp/modfx"
	"github.com/cwbudde/algo-modmatrix/dsp/modmatrix"
	"github.com/cwbudde/algo-modmatrix/dsp/modsource"
)

// DefaultRegistry returns a Registry pre-populated with all built-in sources and processors.
//
//nolint:funlen
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister("lfo", func(ctx Context, p Params) (modmatrix.Modulatable, error) {
		l, err := modsource.NewLFO(ctx.SampleRate)
		if err != nil {
			return nil, err
		}

		var reserved []string
		if name := p.GetStr("type", ""); name != "" {
			w, err := modsource.ParseWaveform(name)
			if err != nil {
				return nil, err
			}

			if err := l.SetParameter("type", modmatrix.Fixed(float64(w))); err != nil {
				return nil, err
			}

			reserved = append(reserved, "type")
		}

		return l, p.apply(l, reserved...)
	})
	r.MustRegister("sig", func(_ Context, p Params) (modmatrix.Modulatable, error) {
		s := modsource.NewSig(p.GetNum("value", 0))

		return s, p.apply(s, "value")
	})
	r.MustRegister("follower", func(ctx Context, p Params) (modmatrix.Modulatable, error) {
		f, err := modsource.NewFollower(ctx.SampleRate)
		if err != nil {
			return nil, err
		}

		return f, p.apply(f)
	})
	r.MustRegister("flanger", func(ctx Context, p Params) (modmatrix.Modulatable, error) {
		fx, err := modfx.NewFlanger(ctx.SampleRate)
		if err != nil {
			return nil, err
		}

		return fx, p.apply(fx)
	})
	r.MustRegister("autowah", func(ctx Context, p Params) (modmatrix.Modulatable, error) {
		fx, err := modfx.NewAutoWah(ctx.SampleRate)
		if err != nil {
			return nil, err
		}

		return fx, p.apply(fx)
	})
	r.MustRegister("tremolo", func(ctx Context, p Params) (modmatrix.Modulatable, error) {
		fx, err := modfx.NewTremolo(ctx.SampleRate)
		if err != nil {
			return nil, err
		}

		return fx, p.apply(fx)
	})
	r.MustRegister("phaser", func(ctx Context, p Params) (modmatrix.Modulatable, error) {
		stages := int(math.Round(p.GetNum("stages", 6)))

		fx, err := modfx.NewPhaser(ctx.SampleRate, stages)
		if err != nil {
			return nil, err
		}

		return fx, p.apply(fx, "stages")
	})
	r.MustRegister("ringmod", func(ctx Context, p Params) (modmatrix.Modulatable, error) {
		fx, err := modfx.NewRingMod(ctx.SampleRate)
		if err != nil {
			return nil, err
		}

		return fx, p.apply(fx)
	})
	r.MustRegister("moog", func(ctx Context, p Params) (modmatrix.Modulatable, error) {
		fx, err := modfx.NewMoog(ctx.SampleRate)
		if err != nil {
			return nil, err
		}

		return fx, p.apply(fx)
	})

	for _, mode := range []modfx.Mode{modfx.Lowpass, modfx.Highpass, modfx.Bandpass, modfx.Notch} {
		r.MustRegister(mode.String(), func(ctx Context, p Params) (modmatrix.Modulatable, error) {
			fx, err := modfx.NewFilter(ctx.SampleRate, mode, p.GetNum("freq", 1000), p.GetNum("q", 0.707))
			if err != nil {
				return nil, err
			}

			return fx, p.apply(fx, "freq", "q")
		})
	}

	return r
}
