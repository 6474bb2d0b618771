package export

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// WizardConfig holds the answers collected by the export wizard.
type WizardConfig struct {
	Format    string
	Output    string
	Title     string
	ExpandAll bool
	// Keys selects which entries to export; empty means all.
	Keys []string
}

// Validate checks that the answers describe a runnable export.
func (c WizardConfig) Validate() error {
	if !isFormat(c.Format) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, c.Format)
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output path is required")
	}
	return nil
}

// DefaultOutput suggests an output file name for format.
func DefaultOutput(format string) string {
	return "kcards" + Extension(format)
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// formatOptions lists the export formats for the select field.
func formatOptions() []huh.Option[string] {
	labels := map[string]string{
		FormatMarkdown: "Markdown (one document, code folded in <details>)",
		FormatHTML:     "HTML (standalone page)",
		FormatJSON:     "JSON (same shape as entry files)",
		FormatSQLite:   "SQLite (entries, tags and code blocks as tables)",
	}
	opts := make([]huh.Option[string], 0, len(Formats))
	for _, f := range []string{FormatMarkdown, FormatHTML, FormatJSON, FormatSQLite} {
		opts = append(opts, huh.NewOption(labels[f], f))
	}
	return opts
}

// entryOptions lists the entries for the multi-select field.
func entryOptions(keys, titles []string) []huh.Option[string] {
	opts := make([]huh.Option[string], len(keys))
	for i, k := range keys {
		label := k
		if i < len(titles) && titles[i] != "" {
			label = titles[i] + " (" + k + ")"
		}
		opts[i] = huh.NewOption(label, k).Selected(true)
	}
	return opts
}

// RunWizard asks for the export settings, starting from defaults. keys and
// titles describe the entries that can be picked.
func RunWizard(defaults WizardConfig, keys, titles []string) (WizardConfig, error) {
	cfg := defaults
	if cfg.Format == "" {
		cfg.Format = FormatMarkdown
	}

	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Export format").
				Options(formatOptions()...).
				Value(&cfg.Format),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Entries to export").
				Options(entryOptions(keys, titles)...).
				Value(&cfg.Keys),
		),
	)
	if err := form.Run(); err != nil {
		return WizardConfig{}, err
	}

	if cfg.Output == "" {
		cfg.Output = DefaultOutput(cfg.Format)
	}
	details := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output path").
				Value(&cfg.Output),
			huh.NewInput().
				Title("Document title").
				Placeholder("Knowledge cards").
				Value(&cfg.Title),
			huh.NewConfirm().
				Title("Expand long code blocks?").
				Description("No keeps them folded like the terminal view").
				Value(&cfg.ExpandAll),
		),
	)
	if err := details.Run(); err != nil {
		return WizardConfig{}, err
	}

	return cfg, cfg.Validate()
}
