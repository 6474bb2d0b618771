package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/kcards/pkg/model"
)

// AssertNoDuplicateIDs verifies all card IDs are unique.
func AssertNoDuplicateIDs(t *testing.T, cards []*model.QuestionCard) {
	t.Helper()
	seen := make(map[string]bool)
	for _, c := range cards {
		if seen[c.ID()] {
			t.Errorf("duplicate card ID: %s", c.ID())
		}
		seen[c.ID()] = true
	}
}

// AssertAllValid verifies every card has a valid question and well-formed
// callouts.
func AssertAllValid(t *testing.T, cards []*model.QuestionCard) {
	t.Helper()
	for i, c := range cards {
		if c == nil {
			t.Errorf("card %d is nil", i)
			continue
		}
		if err := c.Question().Validate(); err != nil {
			t.Errorf("card %d (%s) invalid: %v", i, c.ID(), err)
		}
		model.Walk(c.Body(), func(b model.Block, _ int) bool {
			if co, ok := b.(model.Callout); ok && !co.Kind.Valid() {
				t.Errorf("card %s has callout of unknown kind %q", c.ID(), co.Kind)
			}
			return true
		})
	}
}

// AssertCodeBounded verifies every code block in the card carries maxHeight.
func AssertCodeBounded(t *testing.T, card *model.QuestionCard, maxHeight int) {
	t.Helper()
	for i, code := range card.CodeBlocks() {
		if code.MaxHeight != maxHeight {
			t.Errorf("%s: code block %d bounded at %d, want %d", card.ID(), i, code.MaxHeight, maxHeight)
		}
	}
}

// AssertJSONEqual compares two values after JSON round-tripping.
func AssertJSONEqual(t *testing.T, expected, actual any) {
	t.Helper()

	expectedJSON, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("failed to marshal expected: %v", err)
	}
	actualJSON, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("failed to marshal actual: %v", err)
	}
	if string(expectedJSON) != string(actualJSON) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual:   %s", expectedJSON, actualJSON)
	}
}

// AssertSameCard verifies two cards serialize identically.
func AssertSameCard(t *testing.T, expected, actual *model.QuestionCard) {
	t.Helper()
	AssertJSONEqual(t, model.CardDocOf(expected), model.CardDocOf(actual))
}

// Content file helpers

// WriteEntryFile writes card as a YAML entry file named <id>.yaml in dir and
// returns its path.
func WriteEntryFile(t *testing.T, dir string, card *model.QuestionCard) string {
	t.Helper()

	data, err := yaml.Marshal(model.CardDocOf(card))
	if err != nil {
		t.Fatalf("failed to marshal card %s: %v", card.ID(), err)
	}
	path := filepath.Join(dir, card.ID()+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write entry file: %v", err)
	}
	return path
}

// TempContentDir creates a temporary directory holding one YAML file per card.
func TempContentDir(t *testing.T, cards []*model.QuestionCard) string {
	t.Helper()
	dir := t.TempDir()
	for _, c := range cards {
		WriteEntryFile(t, dir, c)
	}
	return dir
}

// GetIDs returns the card IDs in order.
func GetIDs(cards []*model.QuestionCard) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID()
	}
	return ids
}

// StripANSI removes CSI escape sequences so rendered output can be compared
// as plain text.
func StripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
				j++
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
