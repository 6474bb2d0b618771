package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"pgregory.net/rapid"

	"github.com/vanderheijden86/kcards/pkg/model"
)

// numberedSource returns n lines "line 1" .. "line n".
func numberedSource(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func drawCode(t *rapid.T) model.Code {
	height := rapid.IntRange(0, 300).Draw(t, "height")
	bound := rapid.IntRange(0, 200).Draw(t, "bound")
	return model.CodeBlock("go", numberedSource(height), model.WithMaxHeight(bound))
}

func TestCodeBlock_InitialState(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := drawCode(t)
		m := NewCodeBlockModel(c)

		overflow := c.MaxHeight > 0 && c.Height() > c.MaxHeight
		if overflow != (m.State() == CodeCollapsed) {
			t.Fatalf("height=%d bound=%d state=%s", c.Height(), c.MaxHeight, m.State())
		}
		if !overflow && m.State() != CodeFits {
			t.Fatalf("non-overflowing block in state %s", m.State())
		}
		if m.Toggleable() != overflow {
			t.Fatalf("toggle affordance %v for overflow %v", m.Toggleable(), overflow)
		}
		if again := NewCodeBlockModel(c); again != m {
			t.Fatal("mounting the same block twice gave different states")
		}
	})
}

func TestCodeBlock_EvenTogglesRestoreState(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := drawCode(t)
		pairs := rapid.IntRange(0, 10).Draw(t, "pairs")

		start := NewCodeBlockModel(c)
		m := start
		for i := 0; i < pairs*2; i++ {
			m = m.Toggle()
		}
		if m != start {
			t.Fatalf("after %d toggles state = %s, want %s", pairs*2, m.State(), start.State())
		}
		if start.Toggleable() && start.Toggle().State() != CodeExpanded {
			t.Fatal("one toggle of a collapsed block should expand it")
		}
	})
}

func TestCodeBlock_VisibleLines(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := drawCode(t)
		m := NewCodeBlockModel(c)

		switch m.State() {
		case CodeCollapsed:
			if m.VisibleLines() != c.MaxHeight {
				t.Fatalf("collapsed shows %d lines, bound %d", m.VisibleLines(), c.MaxHeight)
			}
		default:
			if m.VisibleLines() != c.Height() {
				t.Fatalf("state %s shows %d of %d lines", m.State(), m.VisibleLines(), c.Height())
			}
		}
		if m.Expand().VisibleLines() != c.Height() {
			t.Fatal("expanded block must show every line")
		}
		if m.VisibleLines()+m.HiddenLines() != c.Height() {
			t.Fatal("visible + hidden must equal height")
		}
	})
}

func TestCodeBlock_ExpandCollapseOnFittingBlock(t *testing.T) {
	m := NewCodeBlockModel(model.CodeBlock("go", numberedSource(5), model.WithMaxHeight(10)))
	if m.Expand().State() != CodeFits || m.Collapse().State() != CodeFits || m.Toggle().State() != CodeFits {
		t.Fatal("a block that fits has no toggle")
	}
	if m.Hint() != "" {
		t.Fatalf("unexpected hint %q", m.Hint())
	}
}

func TestCodeBlock_UpdateTogglesOnEnter(t *testing.T) {
	m := NewCodeBlockModel(model.CodeBlock("go", numberedSource(30), model.WithMaxHeight(10)))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.State() != CodeExpanded {
		t.Fatalf("enter: state = %s", m.State())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if m.State() != CodeCollapsed {
		t.Fatalf("space: state = %s", m.State())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.State() != CodeCollapsed {
		t.Fatal("other keys must not toggle")
	}
}

func TestCodeBlock_View(t *testing.T) {
	theme := TestTheme()
	code := model.CodeBlock("go", numberedSource(30), model.WithMaxHeight(10), model.WithTitle("main.go"))
	m := NewCodeBlockModel(code)

	out := m.View(theme, 60, false)
	if !strings.Contains(out, "go · main.go · 30 lines") {
		t.Errorf("caption missing:\n%s", out)
	}
	if !strings.Contains(out, "line 10") || strings.Contains(out, "line 11") {
		t.Errorf("collapsed view should stop at line 10:\n%s", out)
	}
	if !strings.Contains(out, "▸ 20 more lines") {
		t.Errorf("collapsed hint missing:\n%s", out)
	}

	out = m.Toggle().View(theme, 60, true)
	if !strings.Contains(out, "line 30") {
		t.Errorf("expanded view should show line 30:\n%s", out)
	}
	if !strings.Contains(out, "▾ showing all 30 lines") {
		t.Errorf("expanded hint missing:\n%s", out)
	}
	if !strings.Contains(out, "› ") {
		t.Errorf("focused caption marker missing:\n%s", out)
	}
}

func TestCodeBlock_EmptySource(t *testing.T) {
	m := NewCodeBlockModel(model.CodeBlock("", "", model.WithMaxHeight(3)))
	if m.State() != CodeFits {
		t.Fatalf("empty block state = %s", m.State())
	}
	if !strings.Contains(m.View(TestTheme(), 40, false), "0 lines") {
		t.Fatal("empty block should report 0 lines")
	}
}
