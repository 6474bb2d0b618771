package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/kcards/pkg/catalog"
	"github.com/vanderheijden86/kcards/pkg/config"
	"github.com/vanderheijden86/kcards/pkg/entries"
	"github.com/vanderheijden86/kcards/pkg/export"
	"github.com/vanderheijden86/kcards/pkg/version"
)

const extraEntry = `question:
  id: go-maps
  title: map 的实现
  category: Go
  content: map 的底层结构是什么?
  tags: [go, map]
body:
  - type: code
    language: go
    max_height: 2
    code: |
      m := map[string]int{}
      m["a"]++
      delete(m, "a")
`

// isolate points the XDG dirs at temp dirs so a developer's config never leaks
// into the tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "")
	t.Setenv("KC_NO_COLOR", "")
}

func runKC(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(context.Background(), append([]string{"kc"}, args...))
	return out.String(), err
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := runKC(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "kc "+version.Version {
		t.Fatalf("version output = %q", out)
	}
}

func TestList(t *testing.T) {
	isolate(t)
	out, err := runKC(t, "list")
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range entries.Modules() {
		if !strings.Contains(out, m.Key) {
			t.Errorf("list is missing %s", m.Key)
		}
	}
	if !strings.Contains(out, "Go 语言基础") {
		t.Error("list should show titles")
	}
	if !strings.HasPrefix(out, "KEY") {
		t.Errorf("list should start with a header, got %q", firstLine(out))
	}
}

func TestList_JSONAndFilters(t *testing.T) {
	isolate(t)
	out, err := runKC(t, "list", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var rows []listRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("list --json is not JSON: %v", err)
	}
	if len(rows) != len(entries.Modules()) {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].Key != "go-basics" || rows[0].CodeBlocks != 2 {
		t.Errorf("first row = %+v", rows[0])
	}

	out, err = runKC(t, "list", "--category", "Nope")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No entries match.") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestList_ContentDir(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "maps.yaml"), []byte(extraEntry), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := runKC(t, "--content-dir", dir, "list", "--tag", "map")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "go-maps") || !strings.Contains(out, "map 的实现") {
		t.Errorf("extra entry missing:\n%s", out)
	}
	if strings.Contains(out, "go-basics") {
		t.Error("tag filter should drop go-basics")
	}
}

func TestShow(t *testing.T) {
	isolate(t)
	out, err := runKC(t, "show", "--width", "80", "go-basics")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(out, "Go 语言基础") != 1 {
		t.Errorf("title should render once:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("non-terminal output should carry no escape codes")
	}
	if !strings.Contains(out, "enter to expand") {
		t.Error("long code block should render collapsed")
	}

	expanded, err := runKC(t, "show", "--expand-all", "go-basics")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(expanded, "enter to expand") {
		t.Error("--expand-all should open every block")
	}
}

func TestShow_Errors(t *testing.T) {
	isolate(t)
	if _, err := runKC(t, "show"); err == nil {
		t.Error("show without a key should fail")
	}
	_, err := runKC(t, "show", "no-such-entry")
	if !errors.Is(err, catalog.ErrUnknownEntry) {
		t.Errorf("err = %v, want ErrUnknownEntry", err)
	}
}

func TestExport(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "cards.json")
	out, err := runKC(t, "export", "--out", path, "go-basics", "channels")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Exported 2 entries") || !strings.Contains(out, "(json)") {
		t.Errorf("unexpected output %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc export.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 2 || doc.Entries[1].Question.ID != "channels" {
		t.Fatalf("unexpected entries: %+v", doc.Entries)
	}
}

func TestExport_Stdout(t *testing.T) {
	isolate(t)
	out, err := runKC(t, "export", "--format", "markdown", "--out", "-", "--title", "Notes", "context")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "# Notes") {
		t.Errorf("markdown should start with the title, got %q", firstLine(out))
	}

	if _, err := runKC(t, "export", "--format", "pdf", "--out", "-"); !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name                  string
		flag, out, configured string
		want                  string
	}{
		{"flag wins", "HTML", "x.json", "sqlite", export.FormatHTML},
		{"from extension", "", "x.db", "json", export.FormatSQLite},
		{"from config", "", "-", "json", export.FormatJSON},
		{"fallback", "", "", "", export.FormatMarkdown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveFormat(tt.flag, tt.out, tt.configured); got != tt.want {
				t.Errorf("resolveFormat = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "card.svg")
	if _, err := runKC(t, "snapshot", "--out", path, "generics"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("not an svg")
	}
}

func TestInitConfig(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "kc", "config.yaml")
	if _, err := runKC(t, "--config", path, "init-config"); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Export.Format != "markdown" {
		t.Errorf("export.format = %q", cfg.Export.Format)
	}
	if _, err := runKC(t, "--config", path, "init-config"); err == nil {
		t.Error("second init-config should refuse to overwrite")
	}
	if _, err := runKC(t, "--config", path, "init-config", "--force"); err != nil {
		t.Errorf("--force: %v", err)
	}
}

func TestConfigWidthAndBadConfig(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  theme: purple\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runKC(t, "--config", path, "list"); err == nil {
		t.Error("invalid theme should fail")
	}
}

func TestAutoCloseAfter(t *testing.T) {
	t.Setenv("KC_TUI_AUTOCLOSE_MS", "")
	if autoCloseAfter() != 0 {
		t.Error("unset should disable auto-close")
	}
	t.Setenv("KC_TUI_AUTOCLOSE_MS", "250")
	if got := autoCloseAfter().Milliseconds(); got != 250 {
		t.Errorf("autoCloseAfter = %dms", got)
	}
	t.Setenv("KC_TUI_AUTOCLOSE_MS", "soon")
	if autoCloseAfter() != 0 {
		t.Error("garbage should disable auto-close")
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
