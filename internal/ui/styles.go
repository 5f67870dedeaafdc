package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorInfo    = lipgloss.Color("#06B6D4")
	colorWarn    = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("241")
)

// styles are bound to one writer's renderer so color output follows that
// writer's terminal capabilities. A plain buffer gets no escape codes.
type styles struct {
	success  lipgloss.Style
	info     lipgloss.Style
	warn     lipgloss.Style
	err      lipgloss.Style
	muted    lipgloss.Style
	key      lipgloss.Style
	selected lipgloss.Style
	box      lipgloss.Style
	title    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		success:  r.NewStyle().Foreground(colorSuccess),
		info:     r.NewStyle().Foreground(colorInfo),
		warn:     r.NewStyle().Foreground(colorWarn),
		err:      r.NewStyle().Foreground(colorError),
		muted:    r.NewStyle().Foreground(colorMuted),
		key:      r.NewStyle().Bold(true),
		selected: r.NewStyle().Foreground(colorPrimary).Bold(true),
		box: r.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1),
		title: r.NewStyle().Foreground(colorPrimary).Bold(true),
	}
}
