package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/kcards/pkg/model"
)

// CodeBlockState is the display state of one mounted code block.
type CodeBlockState int

const (
	// CodeFits means the source is within its bound (or has none): it is
	// shown in full and offers no toggle.
	CodeFits CodeBlockState = iota
	// CodeCollapsed shows only the first MaxHeight lines.
	CodeCollapsed
	// CodeExpanded shows every line of an overflowing block.
	CodeExpanded
)

func (s CodeBlockState) String() string {
	switch s {
	case CodeFits:
		return "fits"
	case CodeCollapsed:
		return "collapsed"
	case CodeExpanded:
		return "expanded"
	default:
		return "unknown"
	}
}

const codeTabWidth = 4

// CodeBlockModel owns the expand/collapse state of a single rendered code
// block. The state is private to the instance and starts over whenever a new
// model is created.
type CodeBlockModel struct {
	code  model.Code
	state CodeBlockState
}

// NewCodeBlockModel creates the model for a freshly mounted block. The
// initial state depends only on the source height and the bound.
func NewCodeBlockModel(c model.Code) CodeBlockModel {
	s := CodeFits
	if c.Overflows() {
		s = CodeCollapsed
	}
	return CodeBlockModel{code: c, state: s}
}

// Code returns the block this model displays.
func (m CodeBlockModel) Code() model.Code {
	return m.code
}

// State returns the current display state.
func (m CodeBlockModel) State() CodeBlockState {
	return m.state
}

// Toggleable reports whether the block shows a toggle affordance.
func (m CodeBlockModel) Toggleable() bool {
	return m.state != CodeFits
}

// Expanded reports whether every line of the source is visible.
func (m CodeBlockModel) Expanded() bool {
	return m.state != CodeCollapsed
}

// Toggle switches between collapsed and expanded. Blocks that fit are left
// alone.
func (m CodeBlockModel) Toggle() CodeBlockModel {
	switch m.state {
	case CodeCollapsed:
		m.state = CodeExpanded
	case CodeExpanded:
		m.state = CodeCollapsed
	}
	return m
}

// Expand shows the full source if the block is toggleable.
func (m CodeBlockModel) Expand() CodeBlockModel {
	if m.state == CodeCollapsed {
		m.state = CodeExpanded
	}
	return m
}

// Collapse clips the source back to its bound if the block is toggleable.
func (m CodeBlockModel) Collapse() CodeBlockModel {
	if m.state == CodeExpanded {
		m.state = CodeCollapsed
	}
	return m
}

// VisibleLines returns how many source lines are currently displayed.
func (m CodeBlockModel) VisibleLines() int {
	h := m.code.Height()
	if m.state == CodeCollapsed && m.code.MaxHeight < h {
		return m.code.MaxHeight
	}
	return h
}

// HiddenLines returns how many source lines are clipped.
func (m CodeBlockModel) HiddenLines() int {
	return m.code.Height() - m.VisibleLines()
}

// Update toggles the block on enter or space. Focus is handled by the owner.
func (m CodeBlockModel) Update(msg tea.Msg) (CodeBlockModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", " ":
			return m.Toggle(), nil
		}
	}
	return m, nil
}

// Caption returns the line shown above the box: language, optional title
// and the total line count.
func (m CodeBlockModel) Caption() string {
	var parts []string
	if m.code.Language != "" {
		parts = append(parts, m.code.Language)
	}
	if m.code.Title != "" {
		parts = append(parts, m.code.Title)
	}
	h := m.code.Height()
	if h == 1 {
		parts = append(parts, "1 line")
	} else {
		parts = append(parts, fmt.Sprintf("%d lines", h))
	}
	return strings.Join(parts, " · ")
}

// Hint returns the toggle affordance text, or "" when the block fits.
func (m CodeBlockModel) Hint() string {
	switch m.state {
	case CodeCollapsed:
		return fmt.Sprintf("▸ %d more lines · enter to expand", m.HiddenLines())
	case CodeExpanded:
		return fmt.Sprintf("▾ showing all %d lines · enter to collapse", m.code.Height())
	}
	return ""
}

// View renders the caption, the bordered code box and the toggle hint.
func (m CodeBlockModel) View(t Theme, width int, focused bool) string {
	r := t.Renderer
	if width < 12 {
		width = 12
	}

	lines := m.code.Lines()[:m.VisibleLines()]

	gutter := len(strconv.Itoa(m.code.Height()))
	codeWidth := width - 4 - gutter - 1
	if codeWidth < 4 {
		codeWidth = 4
	}

	clipped := make([]string, len(lines))
	for i, line := range lines {
		clipped[i] = truncate(expandTabs(line, codeTabWidth), codeWidth)
	}
	colored := highlightLines(clipped, m.code.Language, t)

	numStyle := r.NewStyle().Foreground(ColorCodeLineNums)
	body := make([]string, len(colored))
	for i, line := range colored {
		num := fmt.Sprintf("%*d", gutter, i+1)
		body[i] = numStyle.Render(num) + " " + line
	}
	if len(body) == 0 {
		body = []string{""}
	}

	borderColor := lipgloss.TerminalColor(ColorCodeBorder)
	if focused {
		borderColor = ColorCodeFocused
	}
	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.Join(body, "\n"))

	caption := t.CaptionText.Render(m.Caption())
	if focused {
		caption = t.TitleText.Render("› ") + caption
	}

	parts := []string{caption, box}
	if hint := m.Hint(); hint != "" {
		parts = append(parts, t.MutedText.Render(hint))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
