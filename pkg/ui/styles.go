package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// Light mode colors tuned for WCAG AA compliance (contrast ratio >= 4.5:1)
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBg          = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext     = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}
	ColorInfo      = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	// Category badge
	ColorCategoryBg   = lipgloss.AdaptiveColor{Light: "#E8DDFF", Dark: "#2A1A44"}
	ColorCodeBorder   = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"}
	ColorCodeFocused  = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorCodeLineNums = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#6272A4"}
)

// ══════════════════════════════════════════════════════════════════════════════
// BADGES
// ══════════════════════════════════════════════════════════════════════════════

// RenderCategoryBadge returns a styled category badge.
func RenderCategoryBadge(category string, t Theme) string {
	if category == "" {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(t.Primary).
		Background(ColorCategoryBg).
		Bold(true).
		Padding(0, 1).
		Render(category)
}

// RenderTags renders tags as "#tag" chips separated by spaces. Order is kept
// and duplicates are shown as given.
func RenderTags(tags []string, t Theme) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = t.TagText.Render("#" + tag)
	}
	return strings.Join(parts, " ")
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
