package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const markdownWidth = 100

// MarkdownRenderer renders model answers for the terminal.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer. With color false the ASCII-only
// "notty" style is used, otherwise the style follows the terminal background.
func NewMarkdownRenderer(color bool) (*MarkdownRenderer, error) {
	style := glamour.WithStandardStyle("notty")
	if color {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(markdownWidth))
	if err != nil {
		return nil, err
	}
	return &MarkdownRenderer{renderer: r}, nil
}

// Render returns the rendered text without glamour's surrounding blank lines.
func (m *MarkdownRenderer) Render(text string) (string, error) {
	out, err := m.renderer.Render(text)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
