package testutil

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-modmatrix/dsp/modmatrix"
)

// Knob is a Modulatable test double holding free-form parameters.
type Knob struct {
	Label string
	// Reject makes SetParameter fail with the mapped error for that parameter.
	Reject map[string]error
	// Sets counts successful SetParameter calls.
	Sets int

	order  []string
	values map[string]modmatrix.Value
}

// NewKnob creates a Knob with the given initial fixed parameter values.
func NewKnob(label string, params map[string]float64) *Knob {
	k := &Knob{Label: label, values: make(map[string]modmatrix.Value, len(params))}

	for name, v := range params {
		k.order = append(k.order, name)
		k.values[name] = modmatrix.Fixed(v)
	}

	sort.Strings(k.order)

	return k
}

func (k *Knob) Parameters() []string {
	return append([]string(nil), k.order...)
}

func (k *Knob) Parameter(name string) (modmatrix.Value, error) {
	v, ok := k.values[name]
	if !ok {
		return modmatrix.Value{}, fmt.Errorf("%w: %q", modmatrix.ErrInvalidParameter, name)
	}

	return v, nil
}

func (k *Knob) SetParameter(name string, v modmatrix.Value) error {
	if _, ok := k.values[name]; !ok {
		return fmt.Errorf("%w: %q", modmatrix.ErrInvalidParameter, name)
	}

	if err := k.Reject[name]; err != nil {
		return err
	}

	k.values[name] = v
	k.Sets++

	return nil
}

// Resolve returns the numeric value name currently reads.
func (k *Knob) Resolve(name string) float64 {
	return k.values[name].Float()
}

func (k *Knob) String() string {
	return "Knob(" + k.Label + ")"
}

// Source is a Knob that is also a SignalSource with a settable output.
type Source struct {
	*Knob
	Out float64
}

// NewSource creates a Source emitting out.
func NewSource(label string, out float64, params map[string]float64) *Source {
	return &Source{Knob: NewKnob(label, params), Out: out}
}

func (s *Source) Output() float64 {
	return s.Out
}

func (s *Source) String() string {
	return "Source(" + s.Label + ")"
}
