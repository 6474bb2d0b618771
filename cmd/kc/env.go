package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/vanderheijden86/kcards/pkg/catalog"
	"github.com/vanderheijden86/kcards/pkg/config"
	"github.com/vanderheijden86/kcards/pkg/content"
	"github.com/vanderheijden86/kcards/pkg/debug"
	"github.com/vanderheijden86/kcards/pkg/ui"
)

const defaultWidth = 100

// env is what every command needs: the merged config and the catalog built
// from it.
type env struct {
	cfg     config.Config
	dirs    []string
	catalog *catalog.Catalog
}

func loadConfig(cmd *cli.Command) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}
	if cmd.Bool("no-color") {
		cfg.UI.NoColor = true
	}
	return cfg, nil
}

// setup loads the config and builds the catalog: built-in entries first,
// then entries from the configured and --content-dir directories.
func setup(ctx context.Context, cmd *cli.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, dirs: append(cfg.ContentDirs(), cmd.StringSlice("content-dir")...)}
	if e.catalog, err = e.buildCatalog(ctx); err != nil {
		return nil, err
	}
	debug.Logw("catalog ready", "entries", e.catalog.Len(), "dirs", e.dirs)
	return e, nil
}

func (e *env) buildCatalog(ctx context.Context) (*catalog.Catalog, error) {
	extra, err := content.LoadDirs(ctx, e.dirs)
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}
	return catalog.Builtin(extra, catalog.WithDefaultMaxHeight(e.cfg.UI.DefaultMaxHeight))
}

// theme returns the terminal theme. Output that is not a terminal gets no
// colors.
func (e *env) theme(cmd *cli.Command) ui.Theme {
	w := stdout(cmd)
	noColor := e.cfg.UI.NoColor
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		noColor = true
	}
	return ui.ThemeFor(w, e.cfg.UI.Theme, noColor)
}

// width picks the render width: flag, then config, then the terminal.
func (e *env) width(cmd *cli.Command, flag int) int {
	if flag > 0 {
		return flag
	}
	if e.cfg.UI.Width > 0 {
		return e.cfg.UI.Width
	}
	if f, ok := stdout(cmd).(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}
