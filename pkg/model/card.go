package model

// QuestionCard binds a Question to its body. It has no state and does no
// validation beyond requiring an id.
type QuestionCard struct {
	question Question
	body     []Block
}

// NewQuestionCard assembles a card. It fails with ErrMissingID when the
// question has no usable id.
func NewQuestionCard(q Question, body ...Block) (*QuestionCard, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	q.Tags = cloneStrings(q.Tags)
	var b []Block
	if len(body) > 0 {
		b = make([]Block, len(body))
		copy(b, body)
	}
	return &QuestionCard{question: q, body: b}, nil
}

// Question returns a copy of the card's question record.
func (c *QuestionCard) Question() Question {
	q := c.question
	q.Tags = cloneStrings(q.Tags)
	return q
}

// ID is shorthand for Question().ID.
func (c *QuestionCard) ID() string {
	return c.question.ID
}

// Title is shorthand for Question().Title.
func (c *QuestionCard) Title() string {
	return c.question.Title
}

// Body returns the top-level blocks in order.
func (c *QuestionCard) Body() []Block {
	out := make([]Block, len(c.body))
	copy(out, c.body)
	return out
}

// CodeBlocks returns every code block of the body in document order.
func (c *QuestionCard) CodeBlocks() []Code {
	return CodeBlocks(c.body)
}

// WithDefaultMaxHeight returns a copy of the card in which every code block
// without a bound gets maxHeight. A non-positive value returns c unchanged.
func (c *QuestionCard) WithDefaultMaxHeight(maxHeight int) *QuestionCard {
	if maxHeight <= 0 {
		return c
	}
	body := MapCode(c.body, func(code Code) Code {
		if code.MaxHeight == 0 {
			code.MaxHeight = maxHeight
		}
		return code
	})
	return &QuestionCard{question: c.Question(), body: body}
}
