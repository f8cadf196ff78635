package patch

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-modmatrix/dsp/modmatrix"
)

// Context provides the environment factories build objects for.
type Context struct {
	SampleRate float64
	BlockSize  int
}

// Factory builds one object from its parameters.
type Factory func(ctx Context, p Params) (modmatrix.Modulatable, error)

// Registry maps object type names to their factories.
type Registry struct {
	factories map[string]Factory
}

var (
	errDuplicateType = errors.New("duplicate object type")
	// ErrUnknownType is returned by Build for an unregistered type.
	ErrUnknownType = errors.New("unknown object type")
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given object type.
func (r *Registry) Register(objectType string, factory Factory) error {
	if objectType == "" {
		return errors.New("empty object type")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[objectType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateType, objectType)
	}

	r.factories[objectType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(objectType string, factory Factory) {
	if err := r.Register(objectType, factory); err != nil {
		panic("patch registry: " + err.Error())
	}
}

// Lookup returns the factory for the given object type, or nil.
func (r *Registry) Lookup(objectType string) Factory {
	return r.factories[objectType]
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}

	slices.Sort(types)

	return types
}

// Build creates an object of the given type.
func (r *Registry) Build(ctx Context, objectType string, p Params) (modmatrix.Modulatable, error) {
	factory := r.Lookup(objectType)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, objectType)
	}

	obj, err := factory(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", objectType, err)
	}

	return obj, nil
}
