package patch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/cwbudde/algo-modmatrix/dsp/modfx"
	"github.com/cwbudde/algo-modmatrix/dsp/modmatrix"
)

// Ticker is a source advanced once per block.
type Ticker interface {
	Tick(frames int) error
}

// Feeder is a source that listens to the dry input block.
type Feeder interface {
	Feed(block []float64)
}

// ErrModulated is returned by Set for a parameter that is the destination of a link.
var ErrModulated = errors.New("parameter is modulated")

type rackEntry struct {
	name string
	obj  modmatrix.Modulatable
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger routes session and matrix logging to l.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithInput sets the generator that fills each block before processing.
// The default input is silence.
func WithInput(fill func(block []float64)) SessionOption {
	return func(s *Session) { s.input = fill }
}

// WithOutput sets the sink that receives each processed block.
func WithOutput(sink func(block []float64)) SessionOption {
	return func(s *Session) { s.output = sink }
}

// Session owns a matrix and the rack of objects it processes. It is not
// safe for concurrent use.
type Session struct {
	ctx      Context
	registry *Registry
	matrix   *modmatrix.Matrix
	rack     []rackEntry
	logger   *slog.Logger
	input    func(block []float64)
	output   func(block []float64)
}

// NewSession creates an empty session.
func NewSession(ctx Context, registry *Registry, opts ...SessionOption) (*Session, error) {
	if ctx.SampleRate <= 0 {
		return nil, fmt.Errorf("session sample rate must be > 0: %g", ctx.SampleRate)
	}

	if ctx.BlockSize <= 0 {
		return nil, fmt.Errorf("session block size must be > 0: %d", ctx.BlockSize)
	}

	if registry == nil {
		registry = DefaultRegistry()
	}

	s := &Session{
		ctx:      ctx,
		registry: registry,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.matrix = modmatrix.New(modmatrix.WithLogger(s.logger))

	return s, nil
}

// Context returns the session environment.
func (s *Session) Context() Context { return s.ctx }

// Matrix returns the session's matrix.
func (s *Session) Matrix() *modmatrix.Matrix { return s.matrix }

// Add builds an object of the given type and appends it to the rack.
func (s *Session) Add(name, objectType string, p Params) error {
	obj, err := s.registry.Build(s.ctx, objectType, p)
	if err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}

	return s.AddObject(name, obj)
}

// AddObject registers obj under name and appends it to the rack.
func (s *Session) AddObject(name string, obj modmatrix.Modulatable) error {
	if err := s.matrix.Add(name, obj); err != nil {
		return err
	}

	s.rack = append(s.rack, rackEntry{name: name, obj: obj})

	return nil
}

// Remove unlinks name, drops it from the matrix and from the rack.
func (s *Session) Remove(name string) error {
	if err := s.matrix.Remove(name); err != nil {
		return err
	}

	s.rack = slices.DeleteFunc(s.rack, func(e rackEntry) bool { return e.name == name })

	return nil
}

// Set assigns a fixed value to a parameter of a registered object. A
// parameter driven by a link must be unlinked first.
func (s *Session) Set(name, parameter string, v float64) error {
	obj, ok := s.matrix.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", modmatrix.ErrUnknownName, name)
	}

	if s.matrix.IsModulated(name, parameter) {
		return fmt.Errorf("%w: %s(%s)", ErrModulated, name, parameter)
	}

	return obj.SetParameter(parameter, modmatrix.Fixed(v))
}

// Process runs one block through the rack: sources first, in rack order,
// with feeders seeing the dry block, then every processor in rack order.
// Rejected parameter updates are joined in the result; the block is always
// fully processed.
func (s *Session) Process(block []float64) error {
	var errs []error

	for _, e := range s.rack {
		if f, ok := e.obj.(Feeder); ok {
			f.Feed(block)
		}

		t, ok := e.obj.(Ticker)
		if !ok {
			continue
		}

		if err := t.Tick(len(block)); err != nil {
			s.logger.Warn("parameter update rejected", "object", e.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", e.name, err))
		}
	}

	for _, e := range s.rack {
		p, ok := e.obj.(modfx.Processor)
		if !ok {
			continue
		}

		if err := p.ProcessInPlace(block); err != nil {
			s.logger.Warn("parameter update rejected", "object", e.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", e.name, err))
		}
	}

	return errors.Join(errs...)
}

// Run builds the script's objects and executes its steps, writing dumps to w.
func (s *Session) Run(ctx context.Context, script *Script, w io.Writer) error {
	for _, o := range script.Objects {
		p, err := ParseParams(o.Params)
		if err != nil {
			return fmt.Errorf("object %s: %w", o.Name, err)
		}

		if err := s.Add(o.Name, o.Type, p); err != nil {
			return err
		}
	}

	for i, st := range script.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.Exec(st, w); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
	}

	return nil
}

// Exec applies a single step.
func (s *Session) Exec(st Step, w io.Writer) error {
	if err := st.Validate(); err != nil {
		return err
	}

	s.logger.Debug("step", "op", st.Op, "src", st.Src, "dest", st.Dest, "param", st.Param, "name", st.Name)

	switch st.Op {
	case OpAdd:
		p, err := ParseParams(st.Params)
		if err != nil {
			return err
		}

		return s.Add(st.Name, st.Type, p)
	case OpRemove:
		return s.Remove(st.Name)
	case OpLink:
		return s.matrix.Link(st.Src, st.Dest, st.Param)
	case OpUnlink:
		return s.matrix.Unlink(st.Dest, st.Param)
	case OpUnlinkAll:
		return s.matrix.UnlinkAll(st.Dest)
	case OpRetire:
		return s.matrix.Retire(st.Src)
	case OpSet:
		return s.Set(st.Dest, st.Param, *st.Value)
	case OpDump:
		if w == nil {
			return nil
		}

		if err := s.matrix.Dump(w); err != nil {
			return err
		}

		_, err := io.WriteString(w, "\n")

		return err
	case OpProcess:
		s.processBlocks(max(st.Blocks, 1))
	}

	return nil
}

// processBlocks runs n blocks from the input to the output. Rejected
// parameter updates are logged by Process and do not stop the run.
func (s *Session) processBlocks(n int) {
	block := make([]float64, s.ctx.BlockSize)

	for range n {
		if s.input != nil {
			s.input(block)
		} else {
			clear(block)
		}

		_ = s.Process(block)

		if s.output != nil {
			s.output(block)
		}
	}
}
