package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vanderheijden86/kcards/pkg/model"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

type Theme struct {
	Renderer *lipgloss.Renderer
	NoColor  bool
	Dark     bool

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Callout categories
	Success lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Neutral lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style

	// Pre-computed text styles
	MutedText   lipgloss.Style // hints, line counts
	TitleText   lipgloss.Style // card title
	PromptText  lipgloss.Style // question prompt
	TagText     lipgloss.Style // tag chips
	CaptionText lipgloss.Style // code block caption
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,
		Dark:     r.HasDarkBackground(),

		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Subtext:   ColorSubtext,

		Success: ColorSuccess,
		Info:    ColorInfo,
		Warning: ColorWarning,
		Neutral: ColorSecondary,

		Border:    ColorCodeBorder,
		Highlight: ColorBgHighlight,
		Muted:     ColorMuted,
	}

	t.Base = r.NewStyle().Foreground(ColorText)

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(ColorBg).
		Bold(true).
		Padding(0, 1)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.TitleText = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.PromptText = r.NewStyle().Foreground(t.Subtext).Italic(true)
	t.TagText = r.NewStyle().Foreground(ColorInfo)
	t.CaptionText = r.NewStyle().Foreground(t.Subtext).Bold(true)

	return t
}

// NoColorTheme returns a theme that renders without any ANSI styling.
func NoColorTheme() Theme {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	t := DefaultTheme(r)
	t.NoColor = true
	return t
}

// ThemeFor picks a theme from the configured mode ("auto", "dark", "light")
// and the no-color switch.
func ThemeFor(w io.Writer, mode string, noColor bool) Theme {
	if noColor {
		return NoColorTheme()
	}
	r := lipgloss.NewRenderer(w)
	switch mode {
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	}
	return DefaultTheme(r)
}

// CalloutColor returns the accent color for a callout category.
func (t Theme) CalloutColor(k model.CalloutKind) lipgloss.AdaptiveColor {
	switch k {
	case model.KindSuccess:
		return t.Success
	case model.KindInfo:
		return t.Info
	case model.KindWarning:
		return t.Warning
	default:
		return t.Neutral
	}
}

// CalloutIcon returns the glyph shown before a callout title.
func (t Theme) CalloutIcon(k model.CalloutKind) string {
	switch k {
	case model.KindSuccess:
		return "✔"
	case model.KindInfo:
		return "ℹ"
	case model.KindWarning:
		return "⚠"
	default:
		return "•"
	}
}

// TestTheme returns a colorless theme suitable for use in tests.
func TestTheme() Theme {
	return NoColorTheme()
}
