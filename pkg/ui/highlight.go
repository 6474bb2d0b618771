package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/colorprofile"

	"github.com/vanderheijden86/kcards/pkg/debug"
)

const ansiReset = "\x1b[0m"

// highlightLines syntax-colors source and returns one string per line. The
// language tag is only a hint: unknown tags fall back to plain text. With a
// colorless theme the lines are returned untouched.
func highlightLines(lines []string, language string, t Theme) []string {
	if t.NoColor || len(lines) == 0 {
		return lines
	}

	formatter := "terminal256"
	switch {
	case TermProfile >= colorprofile.TrueColor:
		formatter = "terminal16m"
	case TermProfile < colorprofile.ANSI256:
		formatter = "terminal16"
	}
	style := "dracula"
	if !t.Dark {
		style = "github"
	}

	var b strings.Builder
	if err := quick.Highlight(&b, strings.Join(lines, "\n"), language, formatter, style); err != nil {
		debug.Log("highlight %q: %v", language, err)
		return lines
	}

	out := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	if len(out) != len(lines) {
		// Line structure must match the source for clipping to stay exact.
		return lines
	}
	for i := range out {
		out[i] += ansiReset
	}
	return out
}
