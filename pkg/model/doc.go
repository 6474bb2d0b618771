package model

import "fmt"

// BlockDoc is the serialized form of a Block: a flat record discriminated by
// Type. It is shared by the content-file loader and the exporters.
type BlockDoc struct {
	Type      BlockType  `json:"type" yaml:"type"`
	Variant   string     `json:"variant,omitempty" yaml:"variant,omitempty"`
	Title     string     `json:"title,omitempty" yaml:"title,omitempty"`
	Language  string     `json:"language,omitempty" yaml:"language,omitempty"`
	Code      string     `json:"code,omitempty" yaml:"code,omitempty"`
	MaxHeight int        `json:"max_height,omitempty" yaml:"max_height,omitempty"`
	MD        string     `json:"md,omitempty" yaml:"md,omitempty"`
	Items     []string   `json:"items,omitempty" yaml:"items,omitempty"`
	Ordered   bool       `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Children  []BlockDoc `json:"children,omitempty" yaml:"children,omitempty"`
}

// CardDoc is the serialized form of a QuestionCard.
type CardDoc struct {
	Question Question   `json:"question" yaml:"question"`
	Body     []BlockDoc `json:"body" yaml:"body"`
}

// DocOf converts a block tree into its serialized form.
func DocOf(b Block) BlockDoc {
	switch v := b.(type) {
	case Callout:
		d := BlockDoc{Type: BlockCallout, Variant: string(v.Kind), Title: v.Title}
		for _, child := range v.Children {
			if child == nil {
				continue
			}
			d.Children = append(d.Children, DocOf(child))
		}
		return d
	case Code:
		return BlockDoc{
			Type:      BlockCode,
			Title:     v.Title,
			Language:  v.Language,
			Code:      v.Source,
			MaxHeight: v.MaxHeight,
		}
	case Text:
		return BlockDoc{Type: BlockText, MD: v.Markup}
	case List:
		return BlockDoc{Type: BlockList, Items: cloneStrings(v.Items), Ordered: v.Ordered}
	}
	return BlockDoc{}
}

// CardDocOf converts a card into its serialized form.
func CardDocOf(c *QuestionCard) CardDoc {
	doc := CardDoc{Question: c.Question()}
	for _, b := range c.body {
		if b == nil {
			continue
		}
		doc.Body = append(doc.Body, DocOf(b))
	}
	return doc
}

// Block converts the record back into a Block. Only the shape is checked:
// unknown types and callout variants are rejected, content is not.
func (d BlockDoc) Block() (Block, error) {
	switch d.Type {
	case BlockCallout:
		kind := CalloutKind(d.Variant)
		if !kind.Valid() {
			return nil, fmt.Errorf("callout %q: unknown variant %q (must be success, info, warning, or secondary)", d.Title, d.Variant)
		}
		children, err := BlocksOf(d.Children)
		if err != nil {
			return nil, fmt.Errorf("callout %q: %w", d.Title, err)
		}
		return newCallout(kind, d.Title, children), nil
	case BlockCode:
		return CodeBlock(d.Language, d.Code, WithTitle(d.Title), WithMaxHeight(d.MaxHeight)), nil
	case BlockText:
		return Paragraph(d.MD), nil
	case BlockList:
		if d.Ordered {
			return Numbered(d.Items...), nil
		}
		return Bullets(d.Items...), nil
	case "":
		return nil, fmt.Errorf("block is missing 'type'")
	}
	return nil, fmt.Errorf("unknown block type %q (must be callout, code, text, or list)", d.Type)
}

// BlocksOf converts a slice of records, stopping at the first bad one.
func BlocksOf(docs []BlockDoc) ([]Block, error) {
	var out []Block
	for i, d := range docs {
		b, err := d.Block()
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// Card assembles the QuestionCard described by the record.
func (d CardDoc) Card() (*QuestionCard, error) {
	body, err := BlocksOf(d.Body)
	if err != nil {
		return nil, err
	}
	return NewQuestionCard(d.Question, body...)
}
