// Package testutil provides card fixture generators and assertions for tests.
// All generators produce deterministic output for reproducible tests.
package testutil

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vanderheijden86/kcards/pkg/model"
)

// GeneratorConfig controls card generation.
type GeneratorConfig struct {
	Seed      int64  // Random seed for determinism (0 = 42)
	IDPrefix  string // Prefix for card IDs (default: "card")
	Category  string // Category for every card (default: "Go")
	MaxDepth  int    // Deepest callout nesting in Random (default: 2)
	MaxHeight int    // Bound given to generated code blocks (default: 10)
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:      42,
		IDPrefix:  "card",
		Category:  "Go",
		MaxDepth:  2,
		MaxHeight: 10,
	}
}

// Generator creates card fixtures with various shapes.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	def := DefaultConfig()
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = def.IDPrefix
	}
	if cfg.Category == "" {
		cfg.Category = def.Category
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = def.MaxDepth
	}
	if cfg.MaxHeight <= 0 {
		cfg.MaxHeight = def.MaxHeight
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// NewDefault creates a Generator with DefaultConfig.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

var (
	words = []string{"goroutine", "channel", "slice", "map", "interface", "defer", "context", "mutex", "error", "generic"}
	kinds = []model.CalloutKind{model.KindSuccess, model.KindInfo, model.KindWarning, model.KindSecondary}
)

// CardID returns the id the generator gives the i-th card.
func (g *Generator) CardID(i int) string {
	return fmt.Sprintf("%s-%d", g.cfg.IDPrefix, i)
}

func (g *Generator) question(i int) model.Question {
	w := words[g.rng.Intn(len(words))]
	return model.NewQuestion(
		g.CardID(i),
		fmt.Sprintf("Card %d: %s", i, w),
		g.cfg.Category,
		fmt.Sprintf("How does %s work?", w),
		w, "generated",
	)
}

// Source returns n numbered lines of Go-looking code.
func Source(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("fmt.Println(%d)", i+1)
	}
	return strings.Join(lines, "\n")
}

// LongCode returns a card holding one code block of lines lines bounded at
// maxHeight.
func (g *Generator) LongCode(i, lines, maxHeight int) *model.QuestionCard {
	return g.must(model.NewQuestionCard(g.question(i),
		model.CodeBlock("go", Source(lines), model.WithMaxHeight(maxHeight), model.WithTitle("main.go")),
	))
}

// Nested returns a card whose callouts nest depth levels deep with a code
// block at the bottom.
func (g *Generator) Nested(i, depth int) *model.QuestionCard {
	var inner model.Block = model.CodeBlock("go", Source(g.cfg.MaxHeight+5), model.WithMaxHeight(g.cfg.MaxHeight))
	for d := depth; d > 0; d-- {
		kind := kinds[d%len(kinds)]
		inner = model.NewCallout(kind, fmt.Sprintf("level %d", d), model.Paragraph("text"), inner)
	}
	return g.must(model.NewQuestionCard(g.question(i), inner))
}

// Random returns a card with a random mix of blocks.
func (g *Generator) Random(i int) *model.QuestionCard {
	n := 1 + g.rng.Intn(4)
	body := make([]model.Block, n)
	for j := range body {
		body[j] = g.block(0)
	}
	return g.must(model.NewQuestionCard(g.question(i), body...))
}

// Cards returns n random cards with ids CardID(0) .. CardID(n-1).
func (g *Generator) Cards(n int) []*model.QuestionCard {
	out := make([]*model.QuestionCard, n)
	for i := range out {
		out[i] = g.Random(i)
	}
	return out
}

func (g *Generator) block(depth int) model.Block {
	choice := g.rng.Intn(4)
	if depth >= g.cfg.MaxDepth && choice == 0 {
		choice = 1
	}
	switch choice {
	case 0:
		kids := make([]model.Block, 1+g.rng.Intn(3))
		for i := range kids {
			kids[i] = g.block(depth + 1)
		}
		return model.NewCallout(kinds[g.rng.Intn(len(kinds))], words[g.rng.Intn(len(words))], kids...)
	case 1:
		lines := 1 + g.rng.Intn(2*g.cfg.MaxHeight)
		return model.CodeBlock("go", Source(lines), model.WithMaxHeight(g.cfg.MaxHeight))
	case 2:
		return model.Paragraph("Use **" + words[g.rng.Intn(len(words))] + "** carefully.")
	default:
		items := make([]string, 1+g.rng.Intn(3))
		for i := range items {
			items[i] = words[g.rng.Intn(len(words))]
		}
		if g.rng.Intn(2) == 0 {
			return model.Numbered(items...)
		}
		return model.Bullets(items...)
	}
}

func (g *Generator) must(c *model.QuestionCard, err error) *model.QuestionCard {
	if err != nil {
		panic(fmt.Sprintf("testutil: generated an invalid card: %v", err))
	}
	return c
}
