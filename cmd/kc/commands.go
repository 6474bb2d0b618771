package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"
	cli "github.com/urfave/cli/v3"

	"github.com/vanderheijden86/kcards/pkg/catalog"
	"github.com/vanderheijden86/kcards/pkg/config"
	"github.com/vanderheijden86/kcards/pkg/debug"
	"github.com/vanderheijden86/kcards/pkg/export"
	"github.com/vanderheijden86/kcards/pkg/model"
	"github.com/vanderheijden86/kcards/pkg/ui"
	"github.com/vanderheijden86/kcards/pkg/watcher"
)

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the available entries",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Usage: "Only entries in this category"},
			&cli.StringFlag{Name: "tag", Usage: "Only entries carrying this tag"},
			&cli.BoolFlag{Name: "json", Usage: "Print JSON instead of a table"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			items, err := e.catalog.List()
			if err != nil {
				return err
			}
			items = catalog.FilterCategory(items, cmd.String("category"))
			items = catalog.FilterTag(items, cmd.String("tag"))

			if cmd.Bool("json") {
				return writeListJSON(stdout(cmd), items)
			}
			return writeListTable(stdout(cmd), items)
		},
	}
}

type listRow struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	Category   string   `json:"category,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	CodeBlocks int      `json:"code_blocks"`
}

func writeListJSON(w io.Writer, items []catalog.Summary) error {
	rows := make([]listRow, len(items))
	for i, s := range items {
		rows[i] = listRow{
			Key:        s.Key,
			Title:      s.Question.Title,
			Category:   s.Question.Category,
			Tags:       s.Question.TagList(),
			CodeBlocks: s.CodeBlocks,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeListTable(w io.Writer, items []catalog.Summary) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No entries match.")
		return err
	}
	keyW, titleW := len("KEY"), len("TITLE")
	for _, s := range items {
		keyW = max(keyW, runewidth.StringWidth(s.Key))
		titleW = max(titleW, runewidth.StringWidth(s.Question.Title))
	}
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		runewidth.FillRight("KEY", keyW), runewidth.FillRight("TITLE", titleW), "CODE", "TAGS")
	for _, s := range items {
		if _, err := fmt.Fprintf(w, "%s  %s  %4d  %s\n",
			runewidth.FillRight(s.Key, keyW),
			runewidth.FillRight(s.Question.Title, titleW),
			s.CodeBlocks,
			strings.Join(s.Question.TagList(), ","),
		); err != nil {
			return err
		}
	}
	return nil
}

func showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print an entry's card",
		ArgsUsage: "<key>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "expand-all", Usage: "Show long code blocks in full"},
			&cli.IntFlag{Name: "width", Usage: "Render width in columns (default: terminal width)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			key := cmd.Args().First()
			if key == "" {
				return fmt.Errorf("entry key is required (see 'kc list')")
			}
			e, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			card, err := e.catalog.Open(key)
			if err != nil {
				return err
			}
			out := ui.RenderQuestionCard(card, e.theme(cmd), e.width(cmd, int(cmd.Int("width"))), cmd.Bool("expand-all"))
			_, err = fmt.Fprintln(stdout(cmd), strings.TrimRight(out, "\n"))
			return err
		},
	}
}

func viewCmd() *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "Open the interactive card browser",
		ArgsUsage: "[key]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "watch", Usage: "Reload when entry files change (overrides content.watch)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			var opts []ui.AppOption
			if key := cmd.Args().First(); key != "" {
				opts = append(opts, ui.WithInitialEntry(key))
			}

			if (e.cfg.Content.Watch || cmd.Bool("watch")) && len(e.dirs) > 0 {
				w, err := watcher.NewWatcher(e.dirs,
					watcher.WithOnError(func(err error) { debug.Logw("watch error", "error", err) }),
				)
				if err != nil {
					return fmt.Errorf("watching entries: %w", err)
				}
				if err := w.Start(); err != nil {
					return fmt.Errorf("watching entries: %w", err)
				}
				defer w.Stop()
				opts = append(opts, ui.WithWatcher(w, func() (*catalog.Catalog, error) {
					return e.buildCatalog(ctx)
				}))
			}

			theme := ui.ThemeFor(os.Stdout, e.cfg.UI.Theme, e.cfg.UI.NoColor)
			m, err := ui.NewAppModel(e.catalog, theme, opts...)
			if err != nil {
				return err
			}
			return runTUIProgram(m)
		},
	}
}

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export entries as JSON, Markdown, HTML or SQLite",
		ArgsUsage: "[key...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Usage: "json, markdown, html or sqlite (default: from --out, then config)"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output path, '-' for stdout"},
			&cli.StringFlag{Name: "title", Usage: "Document title"},
			&cli.BoolFlag{Name: "expand-all", Usage: "Write long code blocks open"},
			&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "Choose the settings in a form"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			wc := export.WizardConfig{
				Format:    resolveFormat(cmd.String("format"), cmd.String("out"), e.cfg.Export.Format),
				Output:    cmd.String("out"),
				Title:     cmd.String("title"),
				ExpandAll: cmd.Bool("expand-all"),
				Keys:      cmd.Args().Slice(),
			}
			if wc.Output == "" {
				wc.Output = e.cfg.Export.Output
			}

			if cmd.Bool("interactive") {
				items, err := e.catalog.List()
				if err != nil {
					return err
				}
				keys := make([]string, len(items))
				titles := make([]string, len(items))
				for i, s := range items {
					keys[i], titles[i] = s.Key, s.Question.Title
				}
				if wc, err = export.RunWizard(wc, keys, titles); err != nil {
					return err
				}
			}
			if wc.Output == "" {
				wc.Output = export.DefaultOutput(wc.Format)
			}
			if err := wc.Validate(); err != nil {
				return err
			}

			cards, err := selectCards(e.catalog, wc.Keys)
			if err != nil {
				return err
			}
			opts := export.Options{Title: wc.Title, ExpandAll: wc.ExpandAll}
			if wc.Output == "-" {
				return export.Write(stdout(cmd), wc.Format, cards, opts)
			}
			if err := export.ToFile(wc.Output, wc.Format, cards, opts); err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout(cmd), "Exported %d entries to %s (%s)\n", len(cards), wc.Output, wc.Format)
			return err
		},
	}
}

// resolveFormat prefers the explicit flag, then the output extension, then the
// configured default.
func resolveFormat(flag, out, configured string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	if f, ok := export.FormatFromPath(out); ok {
		return f
	}
	if configured != "" {
		return configured
	}
	return export.FormatMarkdown
}

// selectCards opens keys in order, or every entry when keys is empty.
func selectCards(c *catalog.Catalog, keys []string) ([]*model.QuestionCard, error) {
	if len(keys) == 0 {
		return c.Cards()
	}
	cards := make([]*model.QuestionCard, 0, len(keys))
	for _, k := range keys {
		card, err := c.Open(k)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:      "snapshot",
		Usage:     "Save an entry's card as an SVG or PNG image",
		ArgsUsage: "<key>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output path (.svg or .png, default: <key>.svg)"},
			&cli.IntFlag{Name: "width", Usage: "Render width in columns", Value: 80},
			&cli.BoolFlag{Name: "expand-all", Usage: "Show long code blocks in full"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			key := cmd.Args().First()
			if key == "" {
				return fmt.Errorf("entry key is required (see 'kc list')")
			}
			e, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			card, err := e.catalog.Open(key)
			if err != nil {
				return err
			}
			out := cmd.String("out")
			if out == "" {
				out = key + ".svg"
			}
			if err := export.SaveCardSnapshot(card, export.SnapshotOptions{
				Path:      out,
				Width:     int(cmd.Int("width")),
				ExpandAll: cmd.Bool("expand-all"),
			}); err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout(cmd), "Saved %s\n", out)
			return err
		},
	}
}

func initConfigCmd() *cli.Command {
	return &cli.Command{
		Name:  "init-config",
		Usage: "Write a default config.yaml",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing file"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("config")
			if path == "" {
				path = config.ConfigPath()
			}
			if path == "" {
				return fmt.Errorf("cannot determine config directory")
			}
			if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.SaveTo(config.DefaultConfig(), path); err != nil {
				return err
			}
			_, err := fmt.Fprintf(stdout(cmd), "Wrote %s\n", path)
			return err
		},
	}
}
