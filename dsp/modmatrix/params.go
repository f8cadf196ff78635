package modmatrix

import (
	"errors"
	"fmt"
	"math"
)

// Param describes one named parameter of a concrete object.
type Param struct {
	Name string
	// Min and Max bound the value handed to Apply. Equal bounds disable clamping.
	Min, Max float64
	// Apply pushes a resolved value into the underlying processor. It may be nil
	// for parameters the owner reads itself through Float.
	Apply func(v float64) error
}

type paramSlot struct {
	def     Param
	value   Value
	applied float64
}

// ParamTable is a table-driven Modulatable implementation that concrete
// objects embed or delegate to. Fixed values are applied when set; live
// values are applied on every Refresh.
type ParamTable struct {
	order []string
	slots map[string]*paramSlot
}

// NewParamTable creates an empty table.
func NewParamTable() *ParamTable {
	return &ParamTable{slots: make(map[string]*paramSlot)}
}

// Define registers a parameter with its initial fixed value.
func (t *ParamTable) Define(p Param, initial float64) error {
	if p.Name == "" {
		return errors.New("modmatrix: empty parameter name")
	}

	if _, exists := t.slots[p.Name]; exists {
		return fmt.Errorf("modmatrix: duplicate parameter %q", p.Name)
	}

	if p.Min > p.Max {
		return fmt.Errorf("modmatrix: parameter %q has min %f > max %f", p.Name, p.Min, p.Max)
	}

	slot := &paramSlot{def: p, value: Fixed(initial), applied: p.clamp(initial)}
	if p.Apply != nil {
		if err := p.Apply(slot.applied); err != nil {
			return fmt.Errorf("modmatrix: parameter %q: %w", p.Name, err)
		}
	}

	t.slots[p.Name] = slot
	t.order = append(t.order, p.Name)

	return nil
}

// MustDefine is like Define but panics on error.
func (t *ParamTable) MustDefine(p Param, initial float64) {
	if err := t.Define(p, initial); err != nil {
		panic(err.Error())
	}
}

// Parameters returns the parameter names in definition order.
func (t *ParamTable) Parameters() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)

	return out
}

// Parameter returns the stored value of name.
func (t *ParamTable) Parameter(name string) (Value, error) {
	slot, ok := t.slots[name]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidParameter, name)
	}

	return slot.value, nil
}

// SetParameter stores v. A fixed value is clamped and applied immediately;
// if Apply fails the stored value is left unchanged.
func (t *ParamTable) SetParameter(name string, v Value) error {
	slot, ok := t.slots[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidParameter, name)
	}

	if v.IsLive() {
		slot.value = v
		return nil
	}

	resolved := slot.def.clamp(v.fixed)
	if slot.def.Apply != nil {
		if err := slot.def.Apply(resolved); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	slot.value = v
	slot.applied = resolved

	return nil
}

// Float returns the last value applied for name, or 0 for an unknown name.
func (t *ParamTable) Float(name string) float64 {
	slot, ok := t.slots[name]
	if !ok {
		return 0
	}

	return slot.applied
}

// Refresh reads every live parameter from its source and applies it.
// A value rejected by Apply keeps the previously applied one; all such
// errors are joined in the result.
func (t *ParamTable) Refresh() error {
	var errs []error

	for _, name := range t.order {
		slot := t.slots[name]
		if !slot.value.IsLive() {
			continue
		}

		out := slot.value.source.Output()
		if math.IsNaN(out) || math.IsInf(out, 0) {
			continue
		}

		resolved := slot.def.clamp(out)
		if resolved == slot.applied {
			continue
		}

		if slot.def.Apply != nil {
			if err := slot.def.Apply(resolved); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				continue
			}
		}

		slot.applied = resolved
	}

	return errors.Join(errs...)
}

func (p Param) clamp(v float64) float64 {
	if p.Min == p.Max {
		return v
	}

	return min(max(v, p.Min), p.Max)
}
