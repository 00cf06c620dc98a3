// Package styles provides lipgloss styles for CLI output.
package styles

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorMode controls whether output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether m is a known color mode.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

// Enabled reports whether output written to w should be colored. In auto
// mode only terminals get color.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Table styles the task table. It satisfies table.Styler.
type Table struct {
	header  lipgloss.Style
	overdue lipgloss.Style
}

// NewTable builds table styles for output written to w. When color is
// disabled every style renders text unchanged.
func NewTable(w io.Writer, theme string, mode ColorMode) (*Table, error) {
	p, ok := GetPalette(theme)
	if !ok {
		return nil, fmt.Errorf("unknown theme %q", theme)
	}

	r := lipgloss.NewRenderer(w)
	if mode.Enabled(w) {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Table{
		header: r.NewStyle().
			Foreground(p.Primary).
			Bold(true),
		overdue: r.NewStyle().
			Foreground(p.Error).
			Bold(true),
	}, nil
}

func (t *Table) Header(s string) string  { return t.header.Render(s) }
func (t *Table) Overdue(s string) string { return t.overdue.Render(s) }
