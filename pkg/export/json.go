package export

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/kcards/pkg/model"
)

// Document is the JSON export envelope. Entries use the same shape content
// files are read from, so an export can be split back into entry files.
type Document struct {
	Title   string          `json:"title"`
	Entries []model.CardDoc `json:"entries"`
}

// NewDocument converts cards to their document form.
func NewDocument(cards []*model.QuestionCard, opts Options) Document {
	doc := Document{Title: opts.title(), Entries: make([]model.CardDoc, 0, len(cards))}
	for _, c := range cards {
		doc.Entries = append(doc.Entries, model.CardDocOf(c))
	}
	return doc
}

// WriteJSON writes cards as an indented JSON document.
func WriteJSON(w io.Writer, cards []*model.QuestionCard, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(NewDocument(cards, opts))
}
