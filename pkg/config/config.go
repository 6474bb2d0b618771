// Package config handles loading and saving kc configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/kcards/config.yaml
//   - Data:    ~/.local/share/kcards/ (user entry files)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "kcards"

// Theme values accepted by ui.theme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Export formats accepted by export.format.
var ExportFormats = []string{"json", "markdown", "html", "sqlite"}

// UIConfig holds display preferences.
type UIConfig struct {
	Theme            string `yaml:"theme,omitempty"`              // auto, dark, light
	NoColor          bool   `yaml:"no_color,omitempty"`           // plain output
	Width            int    `yaml:"width,omitempty"`              // 0 = terminal width
	DefaultMaxHeight int    `yaml:"default_max_height,omitempty"` // bound for unbounded code blocks, 0 = none
}

// ContentConfig controls where extra entries come from.
type ContentConfig struct {
	Dirs  []string `yaml:"dirs,omitempty"`  // directories of YAML/JSON entries
	Watch bool     `yaml:"watch,omitempty"` // reload the viewer when they change
}

// ExportConfig holds defaults for kc export.
type ExportConfig struct {
	Format string `yaml:"format,omitempty"`
	Output string `yaml:"output,omitempty"`
}

// Config is the top-level configuration for kc.
type Config struct {
	UI      UIConfig      `yaml:"ui,omitempty"`
	Content ContentConfig `yaml:"content,omitempty"`
	Export  ExportConfig  `yaml:"export,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			Theme: ThemeAuto,
		},
		Export: ExportConfig{
			Format: "markdown",
		},
	}
}

// ConfigDir returns the XDG config directory for kc.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// DataDir returns the XDG data directory for kc.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig().withEnv(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg.withEnv(), nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	for i := range cfg.Content.Dirs {
		cfg.Content.Dirs[i] = expandHome(cfg.Content.Dirs[i])
	}
	cfg.Export.Output = expandHome(cfg.Export.Output)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg.withEnv(), nil
}

// Validate checks enumerated and numeric fields.
func (c Config) Validate() error {
	switch c.UI.Theme {
	case "", ThemeAuto, ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("config: ui.theme must be auto, dark or light, got %q", c.UI.Theme)
	}
	if c.UI.Width < 0 {
		return fmt.Errorf("config: ui.width must not be negative")
	}
	if c.UI.DefaultMaxHeight < 0 {
		return fmt.Errorf("config: ui.default_max_height must not be negative")
	}
	if c.Export.Format != "" && !validFormat(c.Export.Format) {
		return fmt.Errorf("config: export.format must be one of %s, got %q",
			strings.Join(ExportFormats, ", "), c.Export.Format)
	}
	return nil
}

func validFormat(f string) bool {
	for _, v := range ExportFormats {
		if v == f {
			return true
		}
	}
	return false
}

// withEnv applies KC_NO_COLOR and NO_COLOR.
func (c Config) withEnv() Config {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("KC_NO_COLOR") != "" {
		c.UI.NoColor = true
	}
	return c
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ContentDirs returns the configured directories plus the data dir's entries
// folder when it exists.
func (c Config) ContentDirs() []string {
	dirs := append([]string(nil), c.Content.Dirs...)
	if data := DataDir(); data != "" {
		p := filepath.Join(data, "entries")
		if st, err := os.Stat(p); err == nil && st.IsDir() {
			dirs = append(dirs, p)
		}
	}
	return dirs
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
