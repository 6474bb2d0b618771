package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/kcards/pkg/catalog"
)

// EntryItem wraps a catalog summary to implement list.Item.
type EntryItem struct {
	Summary catalog.Summary
}

func (i EntryItem) Title() string {
	return i.Summary.Question.Title
}

func (i EntryItem) Description() string {
	return fmt.Sprintf("%s • %s", i.Summary.Key, i.Summary.Question.Category)
}

// FilterValue includes the key, category and tags so the list filter can
// match on any of them.
func (i EntryItem) FilterValue() string {
	var sb strings.Builder
	sb.WriteString(i.Summary.Question.Title)
	sb.WriteString(" ")
	sb.WriteString(i.Summary.Key)
	sb.WriteString(" ")
	sb.WriteString(i.Summary.Question.Category)
	for _, tag := range i.Summary.Question.Tags {
		sb.WriteString(" ")
		sb.WriteString(tag)
	}
	return sb.String()
}

// EntryDelegate renders entry rows in the picker.
type EntryDelegate struct {
	Theme Theme
}

func (d EntryDelegate) Height() int {
	return 2
}

func (d EntryDelegate) Spacing() int {
	return 0
}

func (d EntryDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d EntryDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(EntryItem)
	if !ok {
		return
	}
	t := d.Theme
	width := m.Width()
	if width <= 0 {
		width = 80
	}
	width--

	selected := index == m.Index()
	marker := "  "
	titleStyle := t.Base
	if selected {
		marker = t.TitleText.Render("▌ ")
		titleStyle = t.TitleText
	}

	count := ""
	if n := i.Summary.CodeBlocks; n > 0 {
		count = t.MutedText.Render(fmt.Sprintf(" %d code", n))
	}
	title := truncate(i.Title(), width-2-lipgloss.Width(count))
	line1 := marker + titleStyle.Render(title) + count

	meta := t.MutedText.Render(i.Summary.Key) + " " + RenderTags(i.Summary.Question.Tags, t)
	line2 := "  " + truncate(meta, width-2)

	fmt.Fprint(w, line1+"\n"+line2)
}

// PickerModel lists catalog entries and reports the chosen key.
type PickerModel struct {
	list   list.Model
	theme  Theme
	chosen string
}

// NewPickerModel builds a picker over the given summaries.
func NewPickerModel(items []catalog.Summary, theme Theme, width, height int) PickerModel {
	l := list.New(entryItems(items), EntryDelegate{Theme: theme}, width, height)
	l.Title = "Knowledge cards"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = theme.Header
	l.Styles.FilterPrompt = theme.Renderer.NewStyle().Foreground(theme.Primary)
	l.Styles.FilterCursor = theme.Renderer.NewStyle().Foreground(theme.Primary)
	return PickerModel{list: l, theme: theme}
}

func entryItems(items []catalog.Summary) []list.Item {
	out := make([]list.Item, len(items))
	for i, s := range items {
		out[i] = EntryItem{Summary: s}
	}
	return out
}

// SetItems replaces the listed entries, keeping the selection when possible.
func (m *PickerModel) SetItems(items []catalog.Summary) tea.Cmd {
	selected := m.SelectedKey()
	cmd := m.list.SetItems(entryItems(items))
	for i, s := range items {
		if s.Key == selected {
			m.list.Select(i)
			break
		}
	}
	return cmd
}

// SetSize resizes the list.
func (m *PickerModel) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// SelectedKey returns the key under the cursor, or "".
func (m PickerModel) SelectedKey() string {
	if sel, ok := m.list.SelectedItem().(EntryItem); ok {
		return sel.Summary.Key
	}
	return ""
}

// Filtering reports whether the user is typing a filter.
func (m PickerModel) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Chosen returns the key picked with enter and clears it.
func (m *PickerModel) Chosen() string {
	k := m.chosen
	m.chosen = ""
	return k
}

func (m PickerModel) Update(msg tea.Msg) (PickerModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		if key.String() == "enter" {
			m.chosen = m.SelectedKey()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m PickerModel) View() string {
	return m.list.View()
}
