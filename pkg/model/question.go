// Package model defines the knowledge card content model: the Question record,
// the ContentBlock tree and the QuestionCard that binds them together.
//
// Everything in this package is immutable once constructed. The only mutable
// state in the system (a code block's expanded flag) lives in the ui package,
// per rendered instance.
package model

import (
	"errors"
	"strings"
)

// ErrMissingID is returned when a card is assembled without a usable id.
var ErrMissingID = errors.New("question id is required")

// Question is the metadata of one knowledge entry.
type Question struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Category string   `json:"category" yaml:"category"`
	Content  string   `json:"content" yaml:"content"`
	Tags     []string `json:"tags" yaml:"tags"`
}

// NewQuestion builds a Question, copying tags so later changes to the
// caller's slice don't leak into the record.
func NewQuestion(id, title, category, content string, tags ...string) Question {
	return Question{
		ID:       id,
		Title:    title,
		Category: category,
		Content:  content,
		Tags:     cloneStrings(tags),
	}
}

// Validate checks the one structural requirement on a question: a non-blank id.
func (q Question) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return ErrMissingID
	}
	return nil
}

// TagList returns a copy of the tags in their original order.
func (q Question) TagList() []string {
	return cloneStrings(q.Tags)
}

// HasTag reports whether the question carries tag (exact match).
func (q Question) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
