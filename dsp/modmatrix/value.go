package modmatrix

import (
	"fmt"
	"strconv"
)

// Modulatable is an object with a fixed set of named, settable parameters.
type Modulatable interface {
	// Parameters lists the parameter names in a stable order.
	Parameters() []string
	// Parameter returns the current value of name or ErrInvalidParameter.
	Parameter(name string) (Value, error)
	// SetParameter replaces the value of name. A live value makes the
	// object read the source's output on every processing cycle.
	SetParameter(name string, v Value) error
}

// SignalSource is a Modulatable whose output can drive other parameters.
type SignalSource interface {
	Modulatable
	// Output returns the most recent control value.
	Output() float64
}

// Value is either a fixed number or a live reference to a SignalSource.
// The zero Value is the fixed number 0.
type Value struct {
	fixed  float64
	source SignalSource
}

// Fixed returns a constant Value.
func Fixed(v float64) Value {
	return Value{fixed: v}
}

// Live returns a Value that follows the output of src.
func Live(src SignalSource) Value {
	return Value{source: src}
}

// IsLive reports whether v follows a SignalSource.
func (v Value) IsLive() bool {
	return v.source != nil
}

// Source returns the live source, or nil for a fixed value.
func (v Value) Source() SignalSource {
	return v.source
}

// Float resolves v to a number: the constant, or the source's current output.
func (v Value) Float() float64 {
	if v.source != nil {
		return v.source.Output()
	}

	return v.fixed
}

// Equal reports whether v and o are the same constant or the same source.
func (v Value) Equal(o Value) bool {
	if v.source != nil || o.source != nil {
		return v.source == o.source
	}

	return v.fixed == o.fixed
}

// String formats a fixed value as a number and a live value by its source.
func (v Value) String() string {
	if v.source == nil {
		return strconv.FormatFloat(v.fixed, 'g', -1, 64)
	}

	return "<" + describe(v.source) + ">"
}

func describe(obj any) string {
	if s, ok := obj.(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprintf("%T", obj)
}
