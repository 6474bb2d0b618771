package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/vanderheijden86/kcards/pkg/model"
)

// calloutChrome is the width a callout box adds around its children:
// two border cells and one padding cell on each side.
const calloutChrome = 4

// RenderCallout wraps already-rendered children in a box colored by the
// callout's category. Children are joined verbatim and in order.
func RenderCallout(c model.Callout, children []string, t Theme, width int) string {
	r := t.Renderer
	color := t.CalloutColor(c.Kind)

	title := r.NewStyle().Foreground(color).Bold(true).
		Render(t.CalloutIcon(c.Kind) + " " + calloutTitle(c))

	content := title
	if len(children) > 0 {
		content += "\n" + strings.Join(children, "\n\n")
	}

	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(width - 2).
		Render(content)
}

func calloutTitle(c model.Callout) string {
	if c.Title != "" {
		return c.Title
	}
	switch c.Kind {
	case model.KindSuccess:
		return "Success"
	case model.KindInfo:
		return "Info"
	case model.KindWarning:
		return "Warning"
	default:
		return "Note"
	}
}

// RenderList renders a bulleted or numbered list with hanging indents.
func RenderList(l model.List, t Theme, width int) string {
	if len(l.Items) == 0 {
		return ""
	}
	out := make([]string, 0, len(l.Items))
	for i, item := range l.Items {
		marker := "• "
		if l.Ordered {
			marker = strings.Repeat(" ", len(strconv.Itoa(len(l.Items)))-len(strconv.Itoa(i+1))) + strconv.Itoa(i+1) + ". "
		}
		mw := runewidth.StringWidth(marker)
		indent := strings.Repeat(" ", mw)
		wrapped := strings.Split(wordwrap.String(item, width-mw), "\n")
		for j, line := range wrapped {
			if j == 0 {
				out = append(out, t.MutedText.Render(marker)+t.Base.Render(line))
				continue
			}
			out = append(out, indent+t.Base.Render(line))
		}
	}
	return strings.Join(out, "\n")
}
