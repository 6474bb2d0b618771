package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	cli "github.com/urfave/cli/v3"

	"github.com/vanderheijden86/kcards/pkg/debug"
	"github.com/vanderheijden86/kcards/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newApp().Run(ctx, os.Args)
	debug.Sync()
	if err != nil {
		errLabel := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
		fmt.Fprintf(os.Stderr, "%s %v\n", errLabel.Render("error:"), err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:        "kc",
		Usage:       "Browse Go knowledge cards in the terminal",
		Description: "Run 'kc view' to open the interactive card browser.",
		Version:     version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Path to config.yaml (default: XDG config dir)"},
			&cli.StringSliceFlag{Name: "content-dir", Usage: "Extra directory of YAML/JSON entries (repeatable)"},
			&cli.BoolFlag{Name: "no-color", Usage: "Disable colors"},
			&cli.BoolFlag{Name: "debug", Usage: "Write debug logs to stderr"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				debug.SetEnabled(true)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			listCmd(),
			showCmd(),
			viewCmd(),
			exportCmd(),
			snapshotCmd(),
			initConfigCmd(),
			versionCmd(),
		},
	}
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the kc version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(stdout(cmd), "kc %s\n", version.Version)
			return err
		},
	}
}

// stdout is the root command's writer, so tests can capture output.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// runTUIProgram runs m on the alternate screen and shuts it down cleanly on
// SIGINT/SIGTERM.
func runTUIProgram(m tea.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set KC_TUI_AUTOCLOSE_MS.
	if ms := autoCloseAfter(); ms > 0 {
		go func() {
			timer := time.NewTimer(ms)
			defer timer.Stop()

			select {
			case <-runDone:
				return
			case <-timer.C:
			}

			p.Quit()

			select {
			case <-runDone:
				return
			case <-time.After(2 * time.Second):
			}

			p.Kill()
		}()
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}

func autoCloseAfter() time.Duration {
	v := os.Getenv("KC_TUI_AUTOCLOSE_MS")
	if v == "" {
		return 0
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
