package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/kcards/pkg/catalog"
	"github.com/vanderheijden86/kcards/pkg/entries"
	"github.com/vanderheijden86/kcards/pkg/model"
)

func newTestApp(t *testing.T, opts ...AppOption) AppModel {
	t.Helper()
	c, err := catalog.Builtin(nil)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewAppModel(c, TestTheme(), opts...)
	if err != nil {
		t.Fatal(err)
	}
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(AppModel)
}

func send(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(AppModel), cmd
}

func TestApp_OpenAndClose(t *testing.T) {
	m := newTestApp(t)
	if m.Viewer() != nil {
		t.Fatal("app should start on the list")
	}
	if !strings.Contains(m.View(), "Go 语言基础") {
		t.Fatalf("first entry not listed:\n%s", m.View())
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Viewer() == nil {
		t.Fatal("enter should open the selected entry")
	}
	if got := m.Viewer().Mount().Key; got != "go-basics" {
		t.Fatalf("opened %q, want go-basics", got)
	}
	if !strings.Contains(m.View(), "kc › go-basics") {
		t.Fatalf("title bar should name the entry:\n%s", m.View())
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Viewer() != nil {
		t.Fatal("esc should return to the list")
	}
}

func TestApp_ReopenIsFreshInstance(t *testing.T) {
	m := newTestApp(t)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	first := m.Viewer().Mount().InstanceID
	m, _ = send(m, keyRunes("e"))

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Viewer().Mount().InstanceID == first {
		t.Fatal("reopening should mount a new instance")
	}
	for i, b := range m.Viewer().CardView().CodeBlocks() {
		if b.State() == CodeExpanded {
			t.Fatalf("block %d kept its expanded state", i)
		}
	}
}

func TestApp_HelpOverlay(t *testing.T) {
	m := newTestApp(t)
	m, _ = send(m, keyRunes("?"))
	if !strings.Contains(m.View(), "Entry view") {
		t.Fatalf("help not shown:\n%s", m.View())
	}
	m, _ = send(m, keyRunes("x"))
	if strings.Contains(m.View(), "Entry view") {
		t.Fatal("any key should dismiss help")
	}
}

func TestApp_Quit(t *testing.T) {
	m := newTestApp(t)
	_, cmd := send(m, keyRunes("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should return tea.Quit")
	}
}

func TestApp_InitialEntry(t *testing.T) {
	m := newTestApp(t, WithInitialEntry("channels"))
	if m.Viewer() == nil || m.Viewer().Mount().Key != "channels" {
		t.Fatal("initial entry should be open")
	}

	c, _ := catalog.Builtin(nil)
	if _, err := NewAppModel(c, TestTheme(), WithInitialEntry("nope")); !errors.Is(err, catalog.ErrUnknownEntry) {
		t.Fatalf("unknown initial entry: err = %v", err)
	}
}

func TestApp_ReloadRemountsOpenEntry(t *testing.T) {
	m := newTestApp(t, WithInitialEntry("go-basics"))
	before := m.Viewer().Mount().InstanceID

	extra := entries.Module{Key: "extra", Factory: func(id string) (*model.QuestionCard, error) {
		return model.NewQuestionCard(model.NewQuestion(id, "Extra", "Go", ""))
	}}
	c, err := catalog.Builtin([]entries.Module{extra})
	if err != nil {
		t.Fatal(err)
	}
	m, _ = send(m, ReloadedMsg{Catalog: c})

	if m.Viewer() == nil || m.Viewer().Mount().Key != "go-basics" {
		t.Fatal("open entry should survive a reload")
	}
	if m.Viewer().Mount().InstanceID == before {
		t.Fatal("reload should remount the open entry")
	}
	if !strings.Contains(m.Status(), "reloaded") {
		t.Fatalf("status = %q", m.Status())
	}
}

func TestApp_ReloadClosesRemovedEntry(t *testing.T) {
	extra := entries.Module{Key: "extra", Factory: func(id string) (*model.QuestionCard, error) {
		return model.NewQuestionCard(model.NewQuestion(id, "Extra", "Go", ""))
	}}
	c, err := catalog.Builtin([]entries.Module{extra})
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewAppModel(c, TestTheme(), WithInitialEntry("extra"))
	if err != nil {
		t.Fatal(err)
	}

	builtin, _ := catalog.Builtin(nil)
	m, _ = send(m, ReloadedMsg{Catalog: builtin})
	if m.Viewer() != nil {
		t.Fatal("viewer should close when its entry disappears")
	}
	if !strings.Contains(m.Status(), "removed") {
		t.Fatalf("status = %q", m.Status())
	}
}

func TestApp_ReloadError(t *testing.T) {
	m := newTestApp(t)
	m, _ = send(m, ReloadedMsg{Err: errors.New("bad yaml")})
	if !strings.Contains(m.Status(), "bad yaml") {
		t.Fatalf("status = %q", m.Status())
	}
}

func TestApp_ContentChangedTriggersReload(t *testing.T) {
	calls := 0
	reload := func() (*catalog.Catalog, error) {
		calls++
		return catalog.Builtin(nil)
	}
	m := newTestApp(t, WithWatcher(nil, reload))

	_, cmd := send(m, ContentChangedMsg{})
	if cmd == nil {
		t.Fatal("content change should schedule a reload")
	}
	msg := cmd()
	if _, ok := msg.(ReloadedMsg); !ok || calls != 1 {
		t.Fatalf("got %T after %d calls", msg, calls)
	}
}
