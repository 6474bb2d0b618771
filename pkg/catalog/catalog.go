// Package catalog maps topic keys to knowledge entry modules and handles
// selection. The mapping is frozen at construction.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vanderheijden86/kcards/pkg/debug"
	"github.com/vanderheijden86/kcards/pkg/entries"
	"github.com/vanderheijden86/kcards/pkg/model"
)

var (
	// ErrUnknownEntry is returned when a key is not in the catalog.
	ErrUnknownEntry = errors.New("unknown entry")
	// ErrDuplicateKey is returned by New when two modules share a key.
	ErrDuplicateKey = errors.New("duplicate entry key")
)

// Catalog is a read-only key -> factory mapping.
type Catalog struct {
	modules          []entries.Module
	index            map[string]int
	defaultMaxHeight int
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithDefaultMaxHeight bounds code blocks that were authored without one.
func WithDefaultMaxHeight(lines int) Option {
	return func(c *Catalog) {
		c.defaultMaxHeight = lines
	}
}

// New builds a catalog from modules, keeping their order.
func New(modules []entries.Module, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		modules: make([]entries.Module, 0, len(modules)),
		index:   make(map[string]int, len(modules)),
	}
	for _, m := range modules {
		if m.Key == "" || m.Factory == nil {
			return nil, fmt.Errorf("catalog: module %q is incomplete", m.Key)
		}
		if _, dup := c.index[m.Key]; dup {
			return nil, fmt.Errorf("catalog: %w: %q", ErrDuplicateKey, m.Key)
		}
		c.index[m.Key] = len(c.modules)
		c.modules = append(c.modules, m)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Builtin returns a catalog of the built-in entries followed by extra.
func Builtin(extra []entries.Module, opts ...Option) (*Catalog, error) {
	return New(append(entries.Modules(), extra...), opts...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.modules)
}

// Keys returns the keys in registration order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.modules))
	for i, m := range c.modules {
		keys[i] = m.Key
	}
	return keys
}

// Has reports whether key is registered.
func (c *Catalog) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Open instantiates the entry for key. The catalog assigns id = key.
func (c *Catalog) Open(key string) (*model.QuestionCard, error) {
	i, ok := c.index[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntry, key)
	}
	card, err := c.modules[i].Factory(key)
	if err != nil {
		return nil, fmt.Errorf("entry %q: %w", key, err)
	}
	return card.WithDefaultMaxHeight(c.defaultMaxHeight), nil
}

// Mount is one mounted instance of an entry. Two mounts of the same key are
// distinct instances with their own view state.
type Mount struct {
	InstanceID uuid.UUID
	Key        string
	Card       *model.QuestionCard
	MountedAt  time.Time
}

// Mount instantiates the entry for key and tags it with a fresh instance id.
func (c *Catalog) Mount(key string) (*Mount, error) {
	card, err := c.Open(key)
	if err != nil {
		return nil, err
	}
	m := &Mount{
		InstanceID: uuid.New(),
		Key:        key,
		Card:       card,
		MountedAt:  time.Now(),
	}
	debug.Logw("mounted entry", "key", key, "instance", m.InstanceID.String())
	return m, nil
}

// Summary is the listing view of an entry.
type Summary struct {
	Key        string
	Question   model.Question
	CodeBlocks int
}

// List instantiates every entry once and returns its summary.
func (c *Catalog) List() ([]Summary, error) {
	defer debug.Trace("catalog.List")()
	out := make([]Summary, 0, len(c.modules))
	for _, m := range c.modules {
		card, err := c.Open(m.Key)
		if err != nil {
			return nil, err
		}
		out = append(out, Summary{
			Key:        m.Key,
			Question:   card.Question(),
			CodeBlocks: len(card.CodeBlocks()),
		})
	}
	return out, nil
}

// Cards instantiates every entry in registration order.
func (c *Catalog) Cards() ([]*model.QuestionCard, error) {
	out := make([]*model.QuestionCard, 0, len(c.modules))
	for _, m := range c.modules {
		card, err := c.Open(m.Key)
		if err != nil {
			return nil, err
		}
		out = append(out, card)
	}
	return out, nil
}

// FilterCategory keeps summaries whose category equals category. An empty
// category keeps everything.
func FilterCategory(items []Summary, category string) []Summary {
	if category == "" {
		return items
	}
	var out []Summary
	for _, s := range items {
		if s.Question.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// FilterTag keeps summaries carrying tag. An empty tag keeps everything.
func FilterTag(items []Summary, tag string) []Summary {
	if tag == "" {
		return items
	}
	var out []Summary
	for _, s := range items {
		if s.Question.HasTag(tag) {
			out = append(out, s)
		}
	}
	return out
}

// Categories returns the distinct categories, sorted.
func Categories(items []Summary) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range items {
		if !seen[s.Question.Category] {
			seen[s.Question.Category] = true
			out = append(out, s.Question.Category)
		}
	}
	sort.Strings(out)
	return out
}
