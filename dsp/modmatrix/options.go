package modmatrix

import (
	"log/slog"
	"sort"
)

// Option configures a Matrix.
type Option func(*Matrix)

// WithLogger sets the logger for link changes. Messages are emitted at
// debug level. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matrix) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithEntries seeds the namespace. Entries are added in sorted name order;
// empty names and nil objects are skipped.
func WithEntries(entries map[string]Modulatable) Option {
	return func(m *Matrix) {
		names := make([]string, 0, len(entries))
		for name := range entries {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			_ = m.Add(name, entries[name])
		}
	}
}
