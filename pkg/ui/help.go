package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type keyHelp struct {
	keys string
	desc string
}

var pickerKeys = []keyHelp{
	{"↑/↓ j/k", "move"},
	{"/", "filter by title, key, category or tag"},
	{"enter", "open entry"},
	{"q", "quit"},
}

var viewerKeys = []keyHelp{
	{"tab / shift+tab", "focus next / previous code block"},
	{"enter / space", "expand or collapse focused block"},
	{"e / E", "expand / collapse all blocks"},
	{"c", "copy focused code"},
	{"j/k ctrl+d/u g/G", "scroll"},
	{"esc", "back to list"},
	{"q", "quit"},
}

// RenderHelp renders the key reference for both screens.
func RenderHelp(t Theme, width int) string {
	r := t.Renderer
	section := r.NewStyle().Bold(true).Foreground(t.Primary)
	keyStyle := r.NewStyle().Foreground(ColorInfo).Bold(true)
	descStyle := r.NewStyle().Foreground(t.Subtext)

	table := func(rows []keyHelp) string {
		kw := 0
		for _, row := range rows {
			if w := lipgloss.Width(row.keys); w > kw {
				kw = w
			}
		}
		lines := make([]string, len(rows))
		for i, row := range rows {
			lines[i] = "  " + keyStyle.Render(padRight(row.keys, kw)) + "  " + descStyle.Render(row.desc)
		}
		return strings.Join(lines, "\n")
	}

	content := strings.Join([]string{
		section.Render("Entry list"),
		table(pickerKeys),
		"",
		section.Render("Entry view"),
		table(viewerKeys),
		"",
		t.MutedText.Render("press any key to close"),
	}, "\n")

	w := width - 4
	if w > 64 {
		w = 64
	}
	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(w).
		Render(content)
}
