package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/kcards/pkg/catalog"
	"github.com/vanderheijden86/kcards/pkg/debug"
	"github.com/vanderheijden86/kcards/pkg/watcher"
)

type focus int

const (
	focusPicker focus = iota
	focusViewer
	focusHelp
)

// ContentChangedMsg is sent when a watched content directory changes.
type ContentChangedMsg struct{}

// ReloadedMsg carries the result of rebuilding the catalog.
type ReloadedMsg struct {
	Catalog *catalog.Catalog
	Err     error
}

// ReadyTimeoutMsg makes the UI usable even if the terminal never reports its
// size.
type ReadyTimeoutMsg struct{}

// ReadyTimeoutCmd returns a command that sends ReadyTimeoutMsg after 100ms.
func ReadyTimeoutCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return ReadyTimeoutMsg{}
	})
}

// WatchContentCmd waits for the next change notification.
func WatchContentCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return ContentChangedMsg{}
	}
}

// ReloadCmd rebuilds the catalog off the UI goroutine.
func ReloadCmd(reload func() (*catalog.Catalog, error)) tea.Cmd {
	return func() tea.Msg {
		c, err := reload()
		return ReloadedMsg{Catalog: c, Err: err}
	}
}

// AppOption configures an AppModel.
type AppOption func(*AppModel)

// WithWatcher enables live reload. reload is called after every change.
func WithWatcher(w *watcher.Watcher, reload func() (*catalog.Catalog, error)) AppOption {
	return func(m *AppModel) {
		m.watcher = w
		m.reload = reload
	}
}

// WithInitialEntry opens key as soon as the app starts.
func WithInitialEntry(key string) AppOption {
	return func(m *AppModel) {
		m.initialKey = key
	}
}

// AppModel is the top-level program: an entry list and the viewer for the
// currently mounted entry.
type AppModel struct {
	catalog *catalog.Catalog
	items   []catalog.Summary
	picker  PickerModel
	viewer  *ViewerModel
	focus   focus
	prev    focus

	theme  Theme
	width  int
	height int
	ready  bool

	watcher    *watcher.Watcher
	reload     func() (*catalog.Catalog, error)
	initialKey string

	status        string
	statusIsError bool
}

// NewAppModel builds the app over a catalog.
func NewAppModel(c *catalog.Catalog, theme Theme, opts ...AppOption) (AppModel, error) {
	items, err := c.List()
	if err != nil {
		return AppModel{}, err
	}
	m := AppModel{
		catalog: c,
		items:   items,
		picker:  NewPickerModel(items, theme, 80, 20),
		theme:   theme,
		width:   80,
		height:  24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.initialKey != "" {
		if err := m.open(m.initialKey); err != nil {
			return AppModel{}, err
		}
	}
	return m, nil
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{ReadyTimeoutCmd()}
	if m.watcher != nil {
		cmds = append(cmds, WatchContentCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Viewer returns the open viewer, or nil on the list screen.
func (m AppModel) Viewer() *ViewerModel {
	return m.viewer
}

// Status returns the app-level status message.
func (m AppModel) Status() string {
	return m.status
}

// open mounts key and shows it. Every open is a fresh instance.
func (m *AppModel) open(key string) error {
	mount, err := m.catalog.Mount(key)
	if err != nil {
		return err
	}
	v := NewViewerModel(mount, m.theme, m.width, m.bodyHeight())
	m.viewer = &v
	m.focus = focusViewer
	return nil
}

func (m *AppModel) bodyHeight() int {
	h := m.height - 1 // title bar
	if h < 4 {
		h = 4
	}
	return h
}

func (m *AppModel) resize() {
	m.picker.SetSize(m.width, m.bodyHeight())
	if m.viewer != nil {
		m.viewer.SetSize(m.width, m.bodyHeight())
	}
}

func (m *AppModel) setError(err error) {
	m.status = err.Error()
	m.statusIsError = true
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case ReadyTimeoutMsg:
		m.ready = true
		return m, nil

	case ContentChangedMsg:
		if m.reload == nil {
			return m, nil
		}
		debug.Log("content changed, reloading")
		return m, ReloadCmd(m.reload)

	case ReloadedMsg:
		var cmds []tea.Cmd
		if m.watcher != nil {
			cmds = append(cmds, WatchContentCmd(m.watcher))
		}
		if msg.Err != nil {
			m.setError(fmt.Errorf("reload: %w", msg.Err))
			return m, tea.Batch(cmds...)
		}
		cmds = append(cmds, m.applyCatalog(msg.Catalog))
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

// applyCatalog swaps in a rebuilt catalog. An open entry is mounted again so
// it reflects the new content; if it disappeared the viewer closes.
func (m *AppModel) applyCatalog(c *catalog.Catalog) tea.Cmd {
	items, err := c.List()
	if err != nil {
		m.setError(fmt.Errorf("reload: %w", err))
		return nil
	}
	m.catalog = c
	m.items = items
	cmd := m.picker.SetItems(items)
	m.status = fmt.Sprintf("reloaded %d entries", len(items))
	m.statusIsError = false

	if m.viewer != nil {
		key := m.viewer.Mount().Key
		if !c.Has(key) {
			m.viewer = nil
			if m.focus == focusViewer {
				m.focus = focusPicker
			}
			m.status = fmt.Sprintf("entry %q was removed", key)
			return cmd
		}
		if err := m.open(key); err != nil {
			m.viewer = nil
			m.focus = focusPicker
			m.setError(err)
		}
	}
	return cmd
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.focus == focusHelp {
		m.focus = m.prev
		return m, nil
	}

	filtering := m.focus == focusPicker && m.picker.Filtering()
	if !filtering {
		switch key {
		case "q":
			return m, tea.Quit
		case "?":
			m.prev = m.focus
			m.focus = focusHelp
			return m, nil
		}
	}

	m.status = ""
	m.statusIsError = false

	switch m.focus {
	case focusViewer:
		v, cmd := m.viewer.Update(msg)
		m.viewer = &v
		if v.ShouldClose() {
			m.viewer = nil
			m.focus = focusPicker
		}
		return m, cmd

	default:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		if chosen := m.picker.Chosen(); chosen != "" {
			if err := m.open(chosen); err != nil {
				m.setError(err)
			}
		}
		return m, cmd
	}
}

func (m AppModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == focusViewer && m.viewer != nil {
		v, c := m.viewer.Update(msg)
		m.viewer = &v
		return m, c
	}
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	r := m.theme.Renderer

	title := "kc"
	if m.viewer != nil && m.focus != focusPicker {
		title += " › " + m.viewer.Mount().Key
	}
	bar := m.theme.Header.Render(title)
	if m.status != "" {
		style := r.NewStyle().Foreground(m.theme.Subtext)
		if m.statusIsError {
			style = r.NewStyle().Foreground(ColorDanger).Bold(true)
		}
		bar += " " + style.Render(truncate(m.status, m.width-len(title)-4))
	}

	var body string
	switch m.focus {
	case focusHelp:
		body = RenderHelp(m.theme, m.width)
	case focusViewer:
		body = m.viewer.View()
	default:
		body = m.picker.View()
	}
	return strings.Join([]string{bar, body}, "\n")
}
