package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles renders CLI output. Colours are dropped when w is not a terminal.
type styles struct {
	title lipgloss.Style
	field lipgloss.Style
	ok    lipgloss.Style
	bad   lipgloss.Style
	muted lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true),
		field: r.NewStyle().Foreground(lipgloss.Color("#89b4fa")),
		ok:    r.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("#f38ba8")),
		muted: r.NewStyle().Foreground(lipgloss.Color("#7f849c")),
	}
}
