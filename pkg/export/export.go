// Package export writes knowledge cards to files for sharing outside the
// terminal: JSON documents, Markdown, standalone HTML and a SQLite database.
// Card snapshots (SVG/PNG) live in snapshot.go.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/kcards/pkg/model"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatSQLite   = "sqlite"
)

// Formats lists every supported export format.
var Formats = []string{FormatJSON, FormatMarkdown, FormatHTML, FormatSQLite}

// ErrUnsupportedFormat is returned for an unknown format name.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Options controls how cards are exported.
type Options struct {
	// Title heads the Markdown and HTML documents.
	Title string
	// ExpandAll writes overflowing code blocks open instead of folded.
	ExpandAll bool
}

func (o Options) title() string {
	if o.Title == "" {
		return "Knowledge cards"
	}
	return o.Title
}

// FormatFromPath infers the export format from a file extension.
func FormatFromPath(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".md", ".markdown":
		return FormatMarkdown, true
	case ".html", ".htm":
		return FormatHTML, true
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, true
	}
	return "", false
}

// Extension returns the usual file extension for format.
func Extension(format string) string {
	switch format {
	case FormatJSON:
		return ".json"
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	case FormatSQLite:
		return ".sqlite3"
	}
	return ""
}

// Write renders cards in a stream format (json, markdown or html).
func Write(w io.Writer, format string, cards []*model.QuestionCard, opts Options) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, cards, opts)
	case FormatMarkdown:
		_, err := io.WriteString(w, GenerateMarkdown(cards, opts))
		return err
	case FormatHTML:
		return WriteHTML(w, cards, opts)
	case FormatSQLite:
		return fmt.Errorf("%s export needs a file path", format)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// ToFile exports cards to path in the given format.
func ToFile(path, format string, cards []*model.QuestionCard, opts Options) error {
	if format == FormatSQLite {
		return ExportSQLite(path, cards)
	}
	if !isFormat(format) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, format, cards, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func isFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
