package modmatrix

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// String returns the textual dump of the matrix.
func (m *Matrix) String() string {
	var sb strings.Builder

	_ = m.Dump(&sb)

	return sb.String()
}

// Dump writes a human-readable report of every entry: its description, the
// parameters it modulates and the parameters modulated on it. The format is
// meant for inspection only.
func (m *Matrix) Dump(w io.Writer) error {
	if len(m.names) == 0 {
		_, err := io.WriteString(w, "Nothing")
		return err
	}

	for i, name := range m.names {
		if i > 0 {
			if _, err := io.WriteString(w, "\n\n"); err != nil {
				return err
			}
		}

		_, err := fmt.Fprintf(w, "%s : %s\n\tsource for: %s\n\n\tdestination for: %s",
			name, describe(m.objects[name]),
			strings.Join(m.pairs(Filter{Source: name}, func(l Link) string { return l.Dest }), ", "),
			strings.Join(m.pairs(Filter{Dest: name}, func(l Link) string { return l.Source }), ", "))
		if err != nil {
			return err
		}
	}

	return nil
}

// pairs formats the matching links as "other(parameter)", deduplicated and sorted.
func (m *Matrix) pairs(f Filter, other func(Link) string) []string {
	var out []string

	for _, l := range m.Entries(f) {
		out = append(out, other(l)+"("+l.Parameter+")")
	}

	slices.Sort(out)

	return slices.Compact(out)
}
