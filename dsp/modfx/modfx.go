package modfx

import (
	"fmt"

	"github.com/cwbudde/algo-modmatrix/dsp/modmatrix"
)

// Processor is a modulatable block processor.
type Processor interface {
	modmatrix.Modulatable
	// ProcessInPlace samples live parameters and processes buf in place. A
	// non-nil error reports rejected parameter updates; buf is still processed.
	ProcessInPlace(buf []float64) error
	// Reset clears processing state without touching parameters.
	Reset()
}

type paramDef struct {
	modmatrix.Param
	initial float64
}

func param(name string, lo, hi float64, apply func(float64) error, initial float64) paramDef {
	return paramDef{Param: modmatrix.Param{Name: name, Min: lo, Max: hi, Apply: apply}, initial: initial}
}

// base carries the parameter table shared by all wrappers.
type base struct {
	label  string
	params *modmatrix.ParamTable
}

func newBase(label string, defs ...paramDef) (base, error) {
	b := base{label: label, params: modmatrix.NewParamTable()}

	for _, d := range defs {
		if err := b.params.Define(d.Param, d.initial); err != nil {
			return base{}, fmt.Errorf("%s: %w", label, err)
		}
	}

	return b, nil
}

func (b *base) Parameters() []string { return b.params.Parameters() }

func (b *base) Parameter(name string) (modmatrix.Value, error) { return b.params.Parameter(name) }

func (b *base) SetParameter(name string, v modmatrix.Value) error {
	if err := b.params.SetParameter(name, v); err != nil {
		return fmt.Errorf("%s: %w", b.label, err)
	}

	return nil
}

func (b *base) refresh() error {
	if err := b.params.Refresh(); err != nil {
		return fmt.Errorf("%s: %w", b.label, err)
	}

	return nil
}

// msToSeconds adapts a setter taking seconds to a parameter expressed in ms.
func msToSeconds(set func(float64) error) func(float64) error {
	return func(ms float64) error { return set(ms / 1000) }
}

var (
	_ Processor = (*Flanger)(nil)
	_ Processor = (*AutoWah)(nil)
	_ Processor = (*Tremolo)(nil)
	_ Processor = (*Phaser)(nil)
	_ Processor = (*RingMod)(nil)
	_ Processor = (*Moog)(nil)
	_ Processor = (*Filter)(nil)
)
