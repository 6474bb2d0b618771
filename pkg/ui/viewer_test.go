package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/kcards/pkg/catalog"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestViewer(t *testing.T, key string) (ViewerModel, *[]string) {
	t.Helper()
	c, err := catalog.Builtin(nil)
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	mount, err := c.Mount(key)
	if err != nil {
		t.Fatalf("Mount(%q): %v", key, err)
	}
	v := NewViewerModel(mount, TestTheme(), 100, 40)
	var copied []string
	v.SetCopyFunc(func(s string) error {
		copied = append(copied, s)
		return nil
	})
	return v, &copied
}

func TestViewer_EnterWithoutFocus(t *testing.T) {
	v, _ := newTestViewer(t, "go-basics")
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(v.Status(), "no code block focused") {
		t.Fatalf("status = %q", v.Status())
	}
}

func TestViewer_FocusAndToggle(t *testing.T) {
	v, _ := newTestViewer(t, "go-basics")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	if v.CardView().Focus() != 0 {
		t.Fatalf("focus = %d, want 0", v.CardView().Focus())
	}
	// hello.go fits within its bound.
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if v.Status() != "code block already fits" {
		t.Fatalf("status = %q", v.Status())
	}

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	if v.CardView().Focus() != 1 {
		t.Fatalf("focus = %d, want 1", v.CardView().Focus())
	}
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	blk, _ := v.CardView().CodeBlock(1)
	if blk.State() != CodeExpanded {
		t.Fatalf("block 1 state = %s", blk.State())
	}
	first, _ := v.CardView().CodeBlock(0)
	if first.State() != CodeFits {
		t.Fatalf("block 0 changed to %s", first.State())
	}

	v, _ = v.Update(keyRunes(" "))
	blk, _ = v.CardView().CodeBlock(1)
	if blk.State() != CodeCollapsed {
		t.Fatalf("space should collapse again, got %s", blk.State())
	}

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if v.CardView().Focus() != 0 {
		t.Fatalf("shift+tab focus = %d, want 0", v.CardView().Focus())
	}
}

func TestViewer_ExpandCollapseAll(t *testing.T) {
	v, _ := newTestViewer(t, "go-basics")

	v, _ = v.Update(keyRunes("e"))
	for i, b := range v.CardView().CodeBlocks() {
		if !b.Expanded() {
			t.Fatalf("block %d not expanded after e", i)
		}
	}
	v, _ = v.Update(keyRunes("E"))
	for i, b := range v.CardView().CodeBlocks() {
		if b.Code().Overflows() && b.State() != CodeCollapsed {
			t.Fatalf("block %d not collapsed after E", i)
		}
	}
}

func TestViewer_CopyFocused(t *testing.T) {
	v, copied := newTestViewer(t, "go-basics")

	v, _ = v.Update(keyRunes("c"))
	if len(*copied) != 0 {
		t.Fatal("nothing should be copied without focus")
	}

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v, _ = v.Update(keyRunes("c"))
	if len(*copied) != 1 {
		t.Fatalf("copied %d times, want 1", len(*copied))
	}
	blk, _ := v.CardView().CodeBlock(0)
	if (*copied)[0] != blk.Code().Source {
		t.Fatal("copied text differs from the block source")
	}
	if !strings.HasPrefix(v.Status(), "copied ") {
		t.Fatalf("status = %q", v.Status())
	}

	v.SetCopyFunc(func(string) error { return errors.New("no clipboard") })
	v, _ = v.Update(keyRunes("y"))
	if !strings.Contains(v.Status(), "no clipboard") {
		t.Fatalf("status = %q", v.Status())
	}
}

func TestViewer_EscCloses(t *testing.T) {
	v, _ := newTestViewer(t, "channels")
	if v.ShouldClose() {
		t.Fatal("fresh viewer should stay open")
	}
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !v.ShouldClose() {
		t.Fatal("esc should close the viewer")
	}
}

func TestViewer_ScrollAndView(t *testing.T) {
	v, _ := newTestViewer(t, "go-basics")
	v, _ = v.Update(tea.WindowSizeMsg{Width: 100, Height: 20})

	out := v.View()
	if !strings.Contains(out, "Go 语言基础") {
		t.Fatalf("title not visible at top:\n%s", out)
	}
	if !strings.Contains(out, "more below") {
		t.Fatalf("scroll hint missing:\n%s", out)
	}

	v, _ = v.Update(keyRunes("G"))
	if !strings.Contains(v.View(), "more above") {
		t.Fatal("G should scroll to the bottom")
	}
	v, _ = v.Update(keyRunes("g"))
	if !strings.Contains(v.View(), "more below") {
		t.Fatal("g should scroll to the top")
	}
}

func TestViewer_RemountResetsState(t *testing.T) {
	v, _ := newTestViewer(t, "go-basics")
	v, _ = v.Update(keyRunes("e"))

	again, _ := newTestViewer(t, "go-basics")
	if again.Mount().InstanceID == v.Mount().InstanceID {
		t.Fatal("each mount should get its own instance id")
	}
	for i, b := range again.CardView().CodeBlocks() {
		if b.State() == CodeExpanded {
			t.Fatalf("block %d carried state into a new mount", i)
		}
	}
}
