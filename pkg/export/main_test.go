package export

import (
	"testing"

	"github.com/vanderheijden86/kcards/pkg/entries"
	"github.com/vanderheijden86/kcards/pkg/model"
)

func builtinCards(t *testing.T) []*model.QuestionCard {
	t.Helper()
	var cards []*model.QuestionCard
	for _, m := range entries.Modules() {
		c, err := m.Factory(m.Key)
		if err != nil {
			t.Fatalf("%s: %v", m.Key, err)
		}
		cards = append(cards, c)
	}
	return cards
}

func sampleCard(t *testing.T) *model.QuestionCard {
	t.Helper()
	long := make([]string, 12)
	for i := range long {
		long[i] = "fmt.Println(" + string(rune('a'+i)) + ")"
	}
	card, err := model.NewQuestionCard(
		model.NewQuestion("sample", "Sample Card", "Go", "What does it print?", "basics", "io"),
		model.Success("Key points",
			model.Bullets("one", "two"),
			model.Paragraph("Some *emphasis* here."),
		),
		model.Warning("",
			model.CodeBlock("go", joinLines(long), model.WithMaxHeight(5), model.WithTitle("long.go")),
		),
		model.CodeBlock("go", "x := 1", model.WithMaxHeight(5)),
		model.Numbered("first", "second"),
	)
	if err != nil {
		t.Fatal(err)
	}
	return card
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
