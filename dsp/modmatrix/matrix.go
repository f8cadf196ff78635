package modmatrix

import (
	"fmt"
	"log/slog"
	"slices"
)

// Matrix is a namespace of named objects and the ordered list of active
// links between them. The zero value is not usable; create one with New.
type Matrix struct {
	names   []string
	objects map[string]Modulatable
	links   []Link
	logger  *slog.Logger
}

// New creates an empty Matrix.
func New(opts ...Option) *Matrix {
	m := &Matrix{
		objects: make(map[string]Modulatable),
		logger:  slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Add registers obj under name.
func (m *Matrix) Add(name string, obj Modulatable) error {
	if name == "" {
		return ErrEmptyName
	}

	if obj == nil {
		return fmt.Errorf("%w: %q", ErrNilObject, name)
	}

	if _, exists := m.objects[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	m.objects[name] = obj
	m.names = append(m.names, name)
	m.logger.Debug("modmatrix add", "name", name, "object", describe(obj))

	return nil
}

// Remove unlinks every link into name, retires every link out of name and
// then drops name from the namespace. If any destination rejects its
// restore, nothing is changed.
func (m *Matrix) Remove(name string) error {
	if _, err := m.lookup(name); err != nil {
		return err
	}

	if err := m.unlinkWhere(func(l Link) bool { return l.Dest == name || l.Source == name }); err != nil {
		return err
	}

	delete(m.objects, name)
	m.names = slices.DeleteFunc(m.names, func(n string) bool { return n == name })
	m.logger.Debug("modmatrix remove", "name", name)

	return nil
}

// Replace removes the object bound to name and registers obj in its place.
// Links involving the old object are undone first.
func (m *Matrix) Replace(name string, obj Modulatable) error {
	if _, err := m.lookup(name); err != nil {
		return err
	}

	if obj == nil {
		return fmt.Errorf("%w: %q", ErrNilObject, name)
	}

	if err := m.Remove(name); err != nil {
		return err
	}

	return m.Add(name, obj)
}

// Lookup returns the object bound to name.
func (m *Matrix) Lookup(name string) (Modulatable, bool) {
	obj, ok := m.objects[name]
	return obj, ok
}

// Has reports whether name is registered.
func (m *Matrix) Has(name string) bool {
	_, ok := m.objects[name]
	return ok
}

// Names returns the registered names in insertion order.
func (m *Matrix) Names() []string {
	return slices.Clone(m.names)
}

// Len returns the number of registered names.
func (m *Matrix) Len() int {
	return len(m.names)
}

// Link makes src the live value of parameter on dest. An existing link on
// the same destination parameter is undone first, so the new link records
// the value that link had overridden.
func (m *Matrix) Link(src, dest, parameter string) error {
	srcObj, err := m.lookup(src)
	if err != nil {
		return err
	}

	destObj, err := m.lookup(dest)
	if err != nil {
		return err
	}

	if err := checkParameter(dest, destObj, parameter); err != nil {
		return err
	}

	source, ok := srcObj.(SignalSource)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotSignalSource, src)
	}

	idx := m.index(Filter{Dest: dest, Parameter: parameter})

	var replaced Link
	if idx >= 0 {
		replaced = m.links[idx]
		if err := m.unlinkAt(idx); err != nil {
			return err
		}
	}

	prev, err := destObj.Parameter(parameter)
	if err == nil {
		err = destObj.SetParameter(parameter, Live(source))
	}

	if err != nil {
		if idx >= 0 {
			m.reinstall(idx, replaced)
		}

		return fmt.Errorf("modmatrix: link %s -> %s(%s): %w", src, dest, parameter, err)
	}

	m.links = append(m.links, Link{Source: src, Dest: dest, Parameter: parameter, Previous: prev})
	m.logger.Debug("modmatrix link", "src", src, "dest", dest, "param", parameter, "previous", prev.String())

	return nil
}

// Unlink removes the link on parameter of dest and restores the value it
// overrode. It is a no-op when the parameter is not modulated.
func (m *Matrix) Unlink(dest, parameter string) error {
	destObj, err := m.lookup(dest)
	if err != nil {
		return err
	}

	if err := checkParameter(dest, destObj, parameter); err != nil {
		return err
	}

	idx := m.index(Filter{Dest: dest, Parameter: parameter})
	if idx < 0 {
		return nil
	}

	return m.unlinkAt(idx)
}

// UnlinkAll removes every link whose destination is dest.
func (m *Matrix) UnlinkAll(dest string) error {
	if _, err := m.lookup(dest); err != nil {
		return err
	}

	return m.unlinkWhere(func(l Link) bool { return l.Dest == dest })
}

// Retire removes every link whose source is src, restoring each
// destination parameter.
func (m *Matrix) Retire(src string) error {
	if _, err := m.lookup(src); err != nil {
		return err
	}

	return m.unlinkWhere(func(l Link) bool { return l.Source == src })
}

// IsModulated reports whether a link exists for parameter of dest.
// Unknown names are reported as not modulated.
func (m *Matrix) IsModulated(dest, parameter string) bool {
	if dest == "" || parameter == "" {
		return false
	}

	return m.index(Filter{Dest: dest, Parameter: parameter}) >= 0
}

// Entries returns the links matching f in insertion order.
func (m *Matrix) Entries(f Filter) []Link {
	var out []Link

	for _, l := range m.links {
		if f.match(l) {
			out = append(out, l)
		}
	}

	return out
}

func (m *Matrix) lookup(name string) (Modulatable, error) {
	obj, ok := m.objects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}

	return obj, nil
}

func checkParameter(name string, obj Modulatable, parameter string) error {
	if _, err := obj.Parameter(parameter); err != nil {
		return fmt.Errorf("%w: %q on %q", ErrInvalidParameter, parameter, name)
	}

	return nil
}

func (m *Matrix) index(f Filter) int {
	return slices.IndexFunc(m.links, f.match)
}

// unlinkWhere restores and drops every link matching pred. When a restore
// is rejected the links already restored go live again and the table is
// left as it was.
func (m *Matrix) unlinkWhere(pred func(Link) bool) error {
	var undone []Link

	for _, l := range m.links {
		if !pred(l) {
			continue
		}

		if err := m.restore(l); err != nil {
			for _, u := range slices.Backward(undone) {
				if rerr := m.relive(u); rerr != nil {
					m.logger.Warn("modmatrix relink failed", "src", u.Source, "dest", u.Dest, "param", u.Parameter, "err", rerr)
				}
			}

			return err
		}

		undone = append(undone, l)
	}

	m.links = slices.DeleteFunc(m.links, pred)

	for _, l := range undone {
		m.logger.Debug("modmatrix unlink", "src", l.Source, "dest", l.Dest, "param", l.Parameter, "restored", l.Previous.String())
	}

	return nil
}

// unlinkAt restores the link's previous value and drops it. The link is
// kept when the destination rejects the restore.
func (m *Matrix) unlinkAt(idx int) error {
	l := m.links[idx]

	if err := m.restore(l); err != nil {
		return err
	}

	m.links = slices.Delete(m.links, idx, idx+1)
	m.logger.Debug("modmatrix unlink", "src", l.Source, "dest", l.Dest, "param", l.Parameter, "restored", l.Previous.String())

	return nil
}

func (m *Matrix) restore(l Link) error {
	if err := m.objects[l.Dest].SetParameter(l.Parameter, l.Previous); err != nil {
		return fmt.Errorf("modmatrix: unlink %s(%s): %w", l.Dest, l.Parameter, err)
	}

	return nil
}

// relive installs the link's source again as the live value.
func (m *Matrix) relive(l Link) error {
	source, ok := m.objects[l.Source].(SignalSource)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotSignalSource, l.Source)
	}

	return m.objects[l.Dest].SetParameter(l.Parameter, Live(source))
}

// reinstall puts back a link removed by unlinkAt at its old position.
func (m *Matrix) reinstall(idx int, l Link) {
	if err := m.relive(l); err != nil {
		m.logger.Warn("modmatrix reinstall failed", "src", l.Source, "dest", l.Dest, "param", l.Parameter, "err", err)
		return
	}

	m.links = slices.Insert(m.links, idx, l)
}
