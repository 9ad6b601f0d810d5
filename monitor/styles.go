package monitor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/eyestrain/internal/strain"
)

const (
	padding  = 2
	maxWidth = 60
)

type styles struct {
	base  lipgloss.Style
	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	hint  lipgloss.Style
	warn  lipgloss.Style
}

func newStyles(darkTheme bool) styles {
	text := lipgloss.Color("#1A1A1A")
	subtle := lipgloss.Color("#6C6C6C")

	if darkTheme {
		text = lipgloss.Color("#FAFAFA")
		subtle = lipgloss.Color("#9B9B9B")
	}

	return styles{
		base:  lipgloss.NewStyle().Padding(1, padding),
		title: lipgloss.NewStyle().Bold(true).Foreground(text),
		label: lipgloss.NewStyle().Width(16).Foreground(subtle),
		value: lipgloss.NewStyle().Bold(true).Foreground(text),
		hint:  lipgloss.NewStyle().Foreground(subtle),
		warn: lipgloss.NewStyle().
			Foreground(lipgloss.Color(strain.High.Accent())).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(strain.High.Accent())).
			Padding(0, 1),
	}
}

// level styles text in the accent colour of a strain level.
func (s styles) level(l strain.Level) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(l.Accent()))
}
