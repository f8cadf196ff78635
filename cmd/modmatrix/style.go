package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type theme struct {
	Primary lipgloss.Color
	Dim     lipgloss.Color
	Warn    lipgloss.Color
}

var defaultTheme = theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
	Warn:    lipgloss.Color("#f2cc60"),
}

type styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Help  lipgloss.Style
	Warn  lipgloss.Style
}

// newStyles derives styles from t for output written to w. Colors are
// dropped when w is not a terminal.
func newStyles(w io.Writer, t theme) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		Title: r.NewStyle().Bold(true).Foreground(t.Primary),
		Label: r.NewStyle().Bold(true),
		Help:  r.NewStyle().Foreground(t.Dim).TabWidth(lipgloss.NoTabConversion),
		Warn:  r.NewStyle().Foreground(t.Warn),
	}
}

// renderDump highlights entry headers of a matrix dump and dims the link lists.
func (s styles) renderDump(dump string) string {
	lines := strings.Split(strings.TrimRight(dump, "\n"), "\n")

	for i, line := range lines {
		switch {
		case line == "":
		case strings.HasPrefix(line, "\t"):
			lines[i] = s.Help.Render(line)
		default:
			name, desc, ok := strings.Cut(line, " : ")
			if !ok {
				lines[i] = s.Help.Render(line)
				continue
			}

			lines[i] = s.Label.Render(name) + " : " + desc
		}
	}

	return strings.Join(lines, "\n")
}
