package patch

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-modmatrix/dsp/modmatrix"
)

// Params holds the parsed parameters for a single object.
type Params struct {
	Num map[string]float64
	Str map[string]string
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// GetStr extracts a string parameter, returning def if missing.
func (p Params) GetStr(key, def string) string {
	if v, ok := p.Str[key]; ok {
		return v
	}

	return def
}

// ParseParams splits a decoded YAML mapping into numeric and string values.
func ParseParams(raw map[string]any) (Params, error) {
	p := Params{Num: make(map[string]float64), Str: make(map[string]string)}

	for key, v := range raw {
		switch x := v.(type) {
		case float64:
			p.Num[key] = x
		case int:
			p.Num[key] = float64(x)
		case int64:
			p.Num[key] = float64(x)
		case uint64:
			p.Num[key] = float64(x)
		case string:
			p.Str[key] = x
		default:
			return Params{}, fmt.Errorf("parameter %q: unsupported value %v (%T)", key, v, v)
		}
	}

	return p, nil
}

// apply sets every numeric parameter not listed in reserved on obj, in
// sorted key order. String parameters must all be reserved.
func (p Params) apply(obj modmatrix.Modulatable, reserved ...string) error {
	for key := range p.Str {
		if !slices.Contains(reserved, key) {
			return fmt.Errorf("%w: %q takes a number", modmatrix.ErrInvalidParameter, key)
		}
	}

	keys := make([]string, 0, len(p.Num))
	for key := range p.Num {
		if !slices.Contains(reserved, key) {
			keys = append(keys, key)
		}
	}

	slices.Sort(keys)

	for _, key := range keys {
		if err := obj.SetParameter(key, modmatrix.Fixed(p.Num[key])); err != nil {
			return err
		}
	}

	return nil
}
