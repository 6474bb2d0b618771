package model

import "strings"

// BlockType discriminates the ContentBlock variants.
type BlockType string

const (
	BlockCallout BlockType = "callout"
	BlockCode    BlockType = "code"
	BlockText    BlockType = "text"
	BlockList    BlockType = "list"
)

// Block is a node of a card body. The set of variants is closed: Callout,
// Code, Text and List.
type Block interface {
	Type() BlockType
	block()
}

// CalloutKind is the semantic category of a callout card.
type CalloutKind string

const (
	KindSuccess   CalloutKind = "success"
	KindInfo      CalloutKind = "info"
	KindWarning   CalloutKind = "warning"
	KindSecondary CalloutKind = "secondary"
)

// CalloutKinds lists every kind in display order.
var CalloutKinds = []CalloutKind{KindSuccess, KindInfo, KindWarning, KindSecondary}

// Valid reports whether k is one of the four known kinds.
func (k CalloutKind) Valid() bool {
	switch k {
	case KindSuccess, KindInfo, KindWarning, KindSecondary:
		return true
	}
	return false
}

// Callout is a titled container. Kind is its only distinguishing property;
// children are kept exactly as given.
type Callout struct {
	Kind     CalloutKind
	Title    string
	Children []Block
}

func (Callout) Type() BlockType { return BlockCallout }
func (Callout) block()          {}

func newCallout(kind CalloutKind, title string, children []Block) Callout {
	var kids []Block
	if len(children) > 0 {
		kids = make([]Block, len(children))
		copy(kids, children)
	}
	return Callout{Kind: kind, Title: title, Children: kids}
}

// Success builds a success callout (key takeaways, correct usage).
func Success(title string, children ...Block) Callout {
	return newCallout(KindSuccess, title, children)
}

// Info builds an informational callout.
func Info(title string, children ...Block) Callout {
	return newCallout(KindInfo, title, children)
}

// Warning builds a warning callout (pitfalls, gotchas).
func Warning(title string, children ...Block) Callout {
	return newCallout(KindWarning, title, children)
}

// Secondary builds a neutral callout, typically holding examples.
func Secondary(title string, children ...Block) Callout {
	return newCallout(KindSecondary, title, children)
}

// NewCallout builds a callout of an arbitrary kind.
func NewCallout(kind CalloutKind, title string, children ...Block) Callout {
	return newCallout(kind, title, children)
}

// Code is an expandable code sample. MaxHeight is the initial display bound
// in lines; zero means unbounded (no truncation, no toggle).
type Code struct {
	Title     string
	Language  string
	Source    string
	MaxHeight int
}

func (Code) Type() BlockType { return BlockCode }
func (Code) block()          {}

// CodeOption configures a Code block.
type CodeOption func(*Code)

// WithMaxHeight sets the initial height bound. Non-positive values clear it.
func WithMaxHeight(lines int) CodeOption {
	return func(c *Code) {
		if lines < 0 {
			lines = 0
		}
		c.MaxHeight = lines
	}
}

// WithTitle sets the optional caption shown above the code.
func WithTitle(title string) CodeOption {
	return func(c *Code) {
		c.Title = title
	}
}

// CodeBlock builds a code sample. The language tag is a display hint only.
func CodeBlock(language, source string, opts ...CodeOption) Code {
	c := Code{Language: language, Source: source}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Lines splits the source into display lines. A single trailing newline does
// not produce an extra empty line.
func (c Code) Lines() []string {
	if c.Source == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(c.Source, "\n"), "\n")
}

// Height is the number of lines the full source occupies.
func (c Code) Height() int {
	return len(c.Lines())
}

// Overflows reports whether the source exceeds the height bound.
func (c Code) Overflows() bool {
	return c.MaxHeight > 0 && c.Height() > c.MaxHeight
}

// Text is a paragraph of plain text or lightweight markdown.
type Text struct {
	Markup string
}

func (Text) Type() BlockType { return BlockText }
func (Text) block()          {}

// Paragraph builds a Text block.
func Paragraph(markup string) Text {
	return Text{Markup: markup}
}

// List is a bulleted or numbered list of short items.
type List struct {
	Items   []string
	Ordered bool
}

func (List) Type() BlockType { return BlockList }
func (List) block()          {}

// Bullets builds an unordered list.
func Bullets(items ...string) List {
	return List{Items: cloneStrings(items)}
}

// Numbered builds an ordered list.
func Numbered(items ...string) List {
	return List{Items: cloneStrings(items), Ordered: true}
}
