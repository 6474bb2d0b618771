package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/kcards/pkg/catalog"
)

// ViewerModel shows one mounted entry in a scrollable viewport and routes
// toggle events to the focused code block.
type ViewerModel struct {
	mount    *catalog.Mount
	view     *CardView
	renderer *Renderer
	viewport viewport.Model
	offsets  []int

	theme  Theme
	width  int
	height int

	status      string
	shouldClose bool

	// copy is swapped out in tests.
	copy func(string) error
}

// NewViewerModel builds a viewer for a freshly mounted entry.
func NewViewerModel(m *catalog.Mount, theme Theme, width, height int) ViewerModel {
	v := ViewerModel{
		mount:    m,
		view:     NewCardView(m.Card),
		renderer: NewRenderer(theme),
		theme:    theme,
		copy:     clipboard.WriteAll,
	}
	v.viewport = viewport.New(width, height)
	v.SetSize(width, height)
	return v
}

func (m ViewerModel) Init() tea.Cmd {
	return nil
}

// Mount returns the mounted entry.
func (m ViewerModel) Mount() *catalog.Mount {
	return m.mount
}

// CardView exposes the per-instance state for inspection.
func (m ViewerModel) CardView() *CardView {
	return m.view
}

// ShouldClose reports whether the user asked to go back.
func (m ViewerModel) ShouldClose() bool {
	return m.shouldClose
}

// Status returns the last status line message.
func (m ViewerModel) Status() string {
	return m.status
}

// SetSize resizes the viewer and re-renders the card.
func (m *ViewerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	vpHeight := height - 2 // status + footer
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.refresh()
}

func (m *ViewerModel) refresh() {
	r := m.view.Render(m.renderer, m.width)
	m.offsets = r.CodeOffsets
	y := m.viewport.YOffset
	m.viewport.SetContent(r.Content)
	m.viewport.SetYOffset(y)
}

// scrollToFocus brings the focused code block into view.
func (m *ViewerModel) scrollToFocus() {
	f := m.view.Focus()
	if f < 0 || f >= len(m.offsets) {
		return
	}
	top := m.offsets[f]
	if top < m.viewport.YOffset || top >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(top)
	}
}

// SetCopyFunc replaces the clipboard writer.
func (m *ViewerModel) SetCopyFunc(fn func(string) error) {
	m.copy = fn
}

func (m ViewerModel) Update(msg tea.Msg) (ViewerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "esc", "backspace":
			m.shouldClose = true
			return m, nil

		case "tab", "n":
			m.view.FocusNext()
			m.refresh()
			m.scrollToFocus()
			return m, nil

		case "shift+tab", "N":
			m.view.FocusPrev()
			m.refresh()
			m.scrollToFocus()
			return m, nil

		case "enter", " ":
			f := m.view.Focus()
			if f < 0 {
				m.status = "no code block focused (tab to focus)"
				return m, nil
			}
			if !m.view.Toggle(f) {
				m.status = "code block already fits"
				return m, nil
			}
			m.refresh()
			m.scrollToFocus()
			return m, nil

		case "e":
			m.view.ExpandAll()
			m.refresh()
			return m, nil

		case "E":
			m.view.CollapseAll()
			m.refresh()
			m.scrollToFocus()
			return m, nil

		case "c", "y":
			m.copyFocused()
			return m, nil

		case "j", "down":
			m.viewport.LineDown(1)
			return m, nil
		case "k", "up":
			m.viewport.LineUp(1)
			return m, nil
		case "ctrl+d", "pgdown":
			m.viewport.HalfViewDown()
			return m, nil
		case "ctrl+u", "pgup":
			m.viewport.HalfViewUp()
			return m, nil
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *ViewerModel) copyFocused() {
	block, ok := m.view.CodeBlock(m.view.Focus())
	if !ok {
		m.status = "no code block focused (tab to focus)"
		return
	}
	if err := m.copy(block.Code().Source); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("copied %d lines", block.Code().Height())
}

func (m ViewerModel) View() string {
	r := m.theme.Renderer
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	status := m.status
	if status == "" && m.viewport.TotalLineCount() > m.viewport.Height {
		switch {
		case m.viewport.AtTop():
			status = "↓ more below"
		case m.viewport.AtBottom():
			status = "↑ more above"
		default:
			status = fmt.Sprintf("↕ %d%%", int(m.viewport.ScrollPercent()*100))
		}
	}
	b.WriteString(r.NewStyle().Foreground(m.theme.Muted).Render(status))
	b.WriteString("\n")

	footer := "tab focus • enter toggle • e/E expand/collapse all • c copy • esc back • ? help"
	b.WriteString(r.NewStyle().Foreground(m.theme.Subtext).Render(truncate(footer, m.width)))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
}
