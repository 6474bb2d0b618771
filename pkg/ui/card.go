package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/kcards/pkg/debug"
	"github.com/vanderheijden86/kcards/pkg/model"
)

// CardView is one mounted QuestionCard: the immutable card plus the state of
// each of its code blocks, indexed in document order.
type CardView struct {
	card   *model.QuestionCard
	blocks []CodeBlockModel
	focus  int // index into blocks, -1 when nothing is focused
}

// NewCardView mounts a card. Every code block starts in its initial state.
func NewCardView(card *model.QuestionCard) *CardView {
	codes := card.CodeBlocks()
	blocks := make([]CodeBlockModel, len(codes))
	for i, c := range codes {
		blocks[i] = NewCodeBlockModel(c)
	}
	return &CardView{card: card, blocks: blocks, focus: -1}
}

// Card returns the mounted card.
func (v *CardView) Card() *model.QuestionCard {
	return v.card
}

// CodeBlocks returns a snapshot of the code block states.
func (v *CardView) CodeBlocks() []CodeBlockModel {
	return append([]CodeBlockModel(nil), v.blocks...)
}

// CodeBlock returns the state of the i-th code block.
func (v *CardView) CodeBlock(i int) (CodeBlockModel, bool) {
	if i < 0 || i >= len(v.blocks) {
		return CodeBlockModel{}, false
	}
	return v.blocks[i], true
}

// Toggle activates the toggle of the i-th code block. It reports whether the
// block had a toggle to activate.
func (v *CardView) Toggle(i int) bool {
	if i < 0 || i >= len(v.blocks) || !v.blocks[i].Toggleable() {
		return false
	}
	v.blocks[i] = v.blocks[i].Toggle()
	debug.Logw("toggled code block", "card", v.card.ID(), "block", i, "state", v.blocks[i].State().String())
	return true
}

// ExpandAll expands every overflowing block.
func (v *CardView) ExpandAll() {
	for i := range v.blocks {
		v.blocks[i] = v.blocks[i].Expand()
	}
}

// CollapseAll collapses every overflowing block.
func (v *CardView) CollapseAll() {
	for i := range v.blocks {
		v.blocks[i] = v.blocks[i].Collapse()
	}
}

// Focus returns the focused code block index, or -1.
func (v *CardView) Focus() int {
	return v.focus
}

// SetFocus focuses block i; out-of-range values clear the focus.
func (v *CardView) SetFocus(i int) {
	if i < 0 || i >= len(v.blocks) {
		v.focus = -1
		return
	}
	v.focus = i
}

// FocusNext moves focus to the next code block, wrapping around.
func (v *CardView) FocusNext() {
	if len(v.blocks) == 0 {
		return
	}
	v.focus = (v.focus + 1) % len(v.blocks)
}

// FocusPrev moves focus to the previous code block, wrapping around.
func (v *CardView) FocusPrev() {
	if len(v.blocks) == 0 {
		return
	}
	if v.focus <= 0 {
		v.focus = len(v.blocks) - 1
		return
	}
	v.focus--
}

// Rendering is the output of CardView.Render.
type Rendering struct {
	Content string
	// CodeOffsets holds the line on which each code block starts.
	CodeOffsets []int
}

// Renderer bundles what a card needs to draw itself.
type Renderer struct {
	Theme Theme
	md    map[int]*MarkdownRenderer
}

// NewRenderer creates a renderer for the theme.
func NewRenderer(t Theme) *Renderer {
	return &Renderer{Theme: t, md: make(map[int]*MarkdownRenderer)}
}

func (r *Renderer) markdown(width int) *MarkdownRenderer {
	if m, ok := r.md[width]; ok {
		return m
	}
	m := NewMarkdownRendererWithTheme(width, r.Theme)
	r.md[width] = m
	return m
}

// Render draws the metadata header followed by the body.
func (v *CardView) Render(r *Renderer, width int) Rendering {
	if width < 24 {
		width = 24
	}
	header := renderHeader(v.card.Question(), r.Theme, width)

	next := 0
	var offsets []int
	parts := []string{header}
	line := lineCount(header) + 1 // blank separator line
	for _, b := range v.card.Body() {
		if b == nil {
			continue
		}
		text, codes := v.renderBlock(b, r, width, &next)
		for _, c := range codes {
			offsets = append(offsets, line+c)
		}
		parts = append(parts, text)
		line += lineCount(text) + 1
	}
	return Rendering{Content: strings.Join(parts, "\n\n"), CodeOffsets: offsets}
}

// renderBlock renders one block and returns the relative start line of each
// code block inside it.
func (v *CardView) renderBlock(b model.Block, r *Renderer, width int, next *int) (string, []int) {
	t := r.Theme
	switch blk := b.(type) {
	case model.Code:
		i := *next
		*next++
		if i >= len(v.blocks) {
			return "", nil
		}
		return v.blocks[i].View(t, width, v.focus == i), []int{0}

	case model.Callout:
		inner := width - calloutChrome
		var children []string
		var offsets []int
		line := 2 // top border + title
		for _, child := range blk.Children {
			if child == nil {
				continue
			}
			text, codes := v.renderBlock(child, r, inner, next)
			for _, c := range codes {
				offsets = append(offsets, line+c)
			}
			children = append(children, text)
			line += lineCount(text) + 1
		}
		return RenderCallout(blk, children, t, width), offsets

	case model.Text:
		out, err := r.markdown(width).Render(blk.Markup)
		if err != nil {
			debug.Log("markdown: %v", err)
			return blk.Markup, nil
		}
		return out, nil

	case model.List:
		return RenderList(blk, t, width), nil
	}
	return "", nil
}

// renderHeader draws the single metadata region: title, category, tags and
// the prompt.
func renderHeader(q model.Question, t Theme, width int) string {
	lines := []string{t.TitleText.Render(truncate(q.Title, width))}

	meta := RenderCategoryBadge(q.Category, t)
	if tags := RenderTags(q.Tags, t); tags != "" {
		if meta != "" {
			meta += " "
		}
		meta += tags
	}
	if meta != "" {
		lines = append(lines, meta)
	}
	if q.Content != "" {
		lines = append(lines, t.Renderer.NewStyle().Width(width).Inherit(t.PromptText).Render(q.Content))
	}
	lines = append(lines, RenderDivider(width, t))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func lineCount(s string) int {
	if s == "" {
		return 1
	}
	return strings.Count(s, "\n") + 1
}

// RenderQuestionCard renders a freshly mounted card. With expandAll every
// overflowing code block is shown in full.
func RenderQuestionCard(card *model.QuestionCard, t Theme, width int, expandAll bool) string {
	v := NewCardView(card)
	if expandAll {
		v.ExpandAll()
	}
	return v.Render(NewRenderer(t), width).Content
}
