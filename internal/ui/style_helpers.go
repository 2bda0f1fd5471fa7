package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// barPainter renders header and command bar segments on one surface color.
// lipgloss resets the background after every styled run, so spaces between
// segments are painted explicitly or the bar shows gaps.
type barPainter struct {
	fill  lipgloss.Style
	space string
}

func newBarPainter(color string) barPainter {
	fill := lipgloss.NewStyle().Background(lipgloss.Color(color))
	return barPainter{fill: fill, space: fill.Render(" ")}
}

// Render applies style on the bar color, word by word.
func (p barPainter) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Inherit(p.fill)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, p.space)
}

// Space returns one painted space.
func (p barPainter) Space() string { return p.space }

// Spaces returns n painted spaces.
func (p barPainter) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return p.fill.Render(strings.Repeat(" ", n))
}

// Sep paints a literal separator such as ":".
func (p barPainter) Sep(sep string) string { return p.fill.Render(sep) }

// Join joins rendered parts with a painted separator.
func (p barPainter) Join(parts []string, sep string) string {
	return strings.Join(parts, p.Sep(sep))
}
