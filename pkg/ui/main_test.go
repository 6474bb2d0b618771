package ui

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	// Plain output keeps substring assertions independent of the terminal.
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Setenv("KC_FORCE_POLL", "1")
	os.Exit(m.Run())
}
