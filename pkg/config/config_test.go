package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UI.Theme != ThemeAuto {
		t.Errorf("expected theme 'auto', got %q", cfg.UI.Theme)
	}
	if cfg.UI.DefaultMaxHeight != 0 {
		t.Errorf("expected no default max height, got %d", cfg.UI.DefaultMaxHeight)
	}
	if cfg.Export.Format != "markdown" {
		t.Errorf("expected export format 'markdown', got %q", cfg.Export.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("KC_NO_COLOR", "")
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.UI.Theme != ThemeAuto || cfg.UI.NoColor {
		t.Errorf("expected default config, got %+v", cfg.UI)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("KC_NO_COLOR", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
ui:
  theme: dark
  width: 100
  default_max_height: 30

content:
  dirs:
    - ~/cards
    - /absolute/cards
  watch: true

export:
  format: html
  output: ~/out/cards.html
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.UI.Theme != ThemeDark || cfg.UI.Width != 100 || cfg.UI.DefaultMaxHeight != 30 {
		t.Errorf("unexpected ui config %+v", cfg.UI)
	}
	if !cfg.Content.Watch || len(cfg.Content.Dirs) != 2 {
		t.Fatalf("unexpected content config %+v", cfg.Content)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "cards"); cfg.Content.Dirs[0] != want {
		t.Errorf("expected expanded dir %q, got %q", want, cfg.Content.Dirs[0])
	}
	if cfg.Content.Dirs[1] != "/absolute/cards" {
		t.Errorf("absolute dir changed: %q", cfg.Content.Dirs[1])
	}
	if want := filepath.Join(home, "out/cards.html"); cfg.Export.Output != want {
		t.Errorf("expected expanded output %q, got %q", want, cfg.Export.Output)
	}
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"theme":  "ui:\n  theme: neon\n",
		"width":  "ui:\n  width: -1\n",
		"height": "ui:\n  default_max_height: -4\n",
		"format": "export:\n  format: pdf\n",
		"yaml":   "ui: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFrom(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFrom_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("KC_NO_COLOR", "1")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.UI.NoColor {
		t.Error("KC_NO_COLOR should force no_color")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("KC_NO_COLOR", "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.UI.Theme = ThemeLight
	cfg.Content.Dirs = []string{"/srv/cards"}
	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.UI.Theme != ThemeLight || len(loaded.Content.Dirs) != 1 || loaded.Content.Dirs[0] != "/srv/cards" {
		t.Errorf("unexpected loaded config %+v", loaded)
	}
}

func TestXDGDirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	if got := ConfigDir(); got != "/tmp/xdg-config/kcards" {
		t.Errorf("ConfigDir() = %q", got)
	}
	if got := ConfigPath(); got != "/tmp/xdg-config/kcards/config.yaml" {
		t.Errorf("ConfigPath() = %q", got)
	}
	if got := DataDir(); got != "/tmp/xdg-data/kcards" {
		t.Errorf("DataDir() = %q", got)
	}
}

func TestContentDirs_IncludesDataEntries(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)

	cfg := DefaultConfig()
	cfg.Content.Dirs = []string{"/x"}
	if got := cfg.ContentDirs(); len(got) != 1 {
		t.Errorf("expected only configured dir, got %v", got)
	}

	entries := filepath.Join(data, "kcards", "entries")
	if err := os.MkdirAll(entries, 0o755); err != nil {
		t.Fatal(err)
	}
	got := cfg.ContentDirs()
	if len(got) != 2 || got[1] != entries {
		t.Errorf("ContentDirs() = %v", got)
	}
}
