package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// MarkdownRenderer renders text blocks through glamour at a fixed width.
type MarkdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdownRendererWithTheme builds a renderer whose style follows the theme.
// If glamour cannot be initialized the renderer falls back to word wrapping.
func NewMarkdownRendererWithTheme(width int, t Theme) *MarkdownRenderer {
	if width < 20 {
		width = 20
	}
	style := "dark"
	switch {
	case t.NoColor:
		style = "notty"
	case !t.Dark:
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &MarkdownRenderer{width: width}
	}
	return &MarkdownRenderer{width: width, renderer: r}
}

// Width returns the wrap width.
func (m *MarkdownRenderer) Width() int {
	return m.width
}

// Render converts markdown to terminal output with surrounding blank lines
// trimmed.
func (m *MarkdownRenderer) Render(md string) (string, error) {
	if strings.TrimSpace(md) == "" {
		return "", nil
	}
	if m.renderer == nil {
		return wordwrap.String(md, m.width), nil
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return "", err
	}
	lines := compressBlankLines(strings.Split(out, "\n"), 1)
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n"), nil
}
