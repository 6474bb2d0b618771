package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/kcards/pkg/model"
	"github.com/vanderheijden86/kcards/pkg/testutil"
)

const sampleYAML = `question:
  id: go-maps
  title: map 的实现
  category: Go
  content: map 的底层结构是什么?
  tags: [go, map]
body:
  - type: callout
    variant: success
    title: 核心要点
    children:
      - type: list
        items: [哈希表, 渐进式扩容]
      - type: text
        md: 遍历顺序**随机**
  - type: code
    language: go
    max_height: 2
    code: |
      m := map[string]int{}
      m["a"]++
      delete(m, "a")
`

const sampleJSON = `{
  "question": {"id": "", "title": "JSON 条目", "category": "Go", "content": "?", "tags": ["json"]},
  "body": [
    {"type": "callout", "variant": "warning", "title": "注意", "children": [
      {"type": "code", "language": "go", "code": "x := 1"}
    ]}
  ]
}`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse_YAML(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML), "maps.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	card, err := doc.Card()
	if err != nil {
		t.Fatalf("Card: %v", err)
	}
	if card.Title() != "map 的实现" {
		t.Errorf("Title = %q", card.Title())
	}
	codes := card.CodeBlocks()
	if len(codes) != 1 || codes[0].Height() != 3 || !codes[0].Overflows() {
		t.Errorf("unexpected code blocks %+v", codes)
	}
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	bad := strings.Replace(sampleYAML, "    language: go", "    lang: go", 1)
	if _, err := Parse([]byte(bad), "x.yaml"); err == nil {
		t.Error("expected error for unknown yaml field")
	}
	if _, err := Parse([]byte(`{"question":{"id":"x"},"body":[],"extra":1}`), "x.json"); err == nil {
		t.Error("expected error for unknown json field")
	}
}

func TestParse_MultipleDocumentsRejected(t *testing.T) {
	if _, err := Parse([]byte(sampleYAML+"---\n"+sampleYAML), "x.yml"); err == nil {
		t.Error("expected error for multi-document yaml")
	}
}

func TestParse_EmptyBody(t *testing.T) {
	if _, err := Parse([]byte("question:\n  id: x\nbody: []\n"), "x.yaml"); err == nil {
		t.Error("expected error for empty body")
	}
}

func TestModule_AssignsID(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML), "maps.yaml")
	if err != nil {
		t.Fatal(err)
	}
	m, err := Module("go-maps", doc)
	if err != nil {
		t.Fatal(err)
	}
	card, err := m.Factory("other-id")
	if err != nil {
		t.Fatal(err)
	}
	if card.ID() != "other-id" {
		t.Errorf("ID = %q, want other-id", card.ID())
	}
	if _, err := m.Factory(""); err != model.ErrMissingID {
		t.Errorf("empty id error = %v", err)
	}
}

func TestModule_BadBlock(t *testing.T) {
	doc := model.CardDoc{
		Question: model.Question{ID: "x"},
		Body:     []model.BlockDoc{{Type: "callout", Variant: "danger"}},
	}
	if _, err := Module("x", doc); err == nil {
		t.Error("expected error for unknown callout variant")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "maps.yaml", sampleYAML)
	writeFile(t, dir, "from-json.json", sampleJSON)
	writeFile(t, dir, "README.md", "# not an entry")
	if err := os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755); err != nil {
		t.Fatal(err)
	}

	mods, err := LoadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(mods) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(mods))
	}
	if mods[0].Key != "from-json" || mods[1].Key != "go-maps" {
		t.Errorf("keys = %q, %q", mods[0].Key, mods[1].Key)
	}
	card, err := mods[0].Factory(mods[0].Key)
	if err != nil {
		t.Fatal(err)
	}
	if card.Body()[0].(model.Callout).Kind != model.KindWarning {
		t.Error("expected warning callout")
	}
}

func TestLoadDir_BadFileFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.yaml", sampleYAML)
	writeFile(t, dir, "bad.yaml", "question: [\n")
	_, err := LoadDir(context.Background(), dir)
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("error = %v, want mention of bad.yaml", err)
	}
}

func TestLoadDir_DuplicateKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", sampleYAML)
	writeFile(t, dir, "b.yaml", sampleYAML)
	if _, err := LoadDir(context.Background(), dir); err == nil {
		t.Error("expected duplicate key error")
	}
}

func TestLoadDir_Missing(t *testing.T) {
	if _, err := LoadDir(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing dir")
	}
}

func TestLoadDirs_Concatenates(t *testing.T) {
	d1, d2 := t.TempDir(), t.TempDir()
	writeFile(t, d1, "maps.yaml", sampleYAML)
	writeFile(t, d2, "j.json", sampleJSON)
	mods, err := LoadDirs(context.Background(), []string{d1, d2})
	if err != nil {
		t.Fatal(err)
	}
	if len(mods) != 2 || mods[0].Key != "go-maps" || mods[1].Key != "j" {
		t.Errorf("unexpected modules %+v", mods)
	}
}

func TestLoadDir_GeneratedCardsRoundTrip(t *testing.T) {
	cards := testutil.NewDefault().Cards(8)
	cards = append(cards, testutil.NewDefault().Nested(8, 3))
	dir := testutil.TempContentDir(t, cards)

	mods, err := LoadDir(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(mods) != len(cards) {
		t.Fatalf("loaded %d modules, want %d", len(mods), len(cards))
	}
	byKey := make(map[string]*model.QuestionCard, len(cards))
	for _, c := range cards {
		byKey[c.ID()] = c
	}
	for _, m := range mods {
		got, err := m.Factory(m.Key)
		if err != nil {
			t.Fatalf("%s: %v", m.Key, err)
		}
		testutil.AssertSameCard(t, byKey[m.Key], got)
	}
}
