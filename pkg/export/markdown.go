package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vanderheijden86/kcards/pkg/model"
)

// Package-level compiled regex for slug creation (avoids recompilation per call)
var slugNonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)

// anchorFor returns a heading anchor for a card. Titles without any ASCII
// letters fall back to the id.
func anchorFor(c *model.QuestionCard) string {
	slug := strings.Trim(slugNonAlphanumericRegex.ReplaceAllString(strings.ToLower(c.Title()), "-"), "-")
	if slug == "" {
		slug = strings.Trim(slugNonAlphanumericRegex.ReplaceAllString(strings.ToLower(c.ID()), "-"), "-")
	}
	if slug == "" {
		return "entry"
	}
	return slug
}

// fenceFor returns a backtick fence longer than any run inside src.
func fenceFor(src string) string {
	longest, run := 0, 0
	for _, r := range src {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

var calloutMarks = map[model.CalloutKind]string{
	model.KindSuccess:   "✔",
	model.KindInfo:      "ℹ",
	model.KindWarning:   "⚠",
	model.KindSecondary: "•",
}

// calloutLabel returns the callout title, defaulting to its kind.
func calloutLabel(c model.Callout) string {
	if c.Title != "" {
		return c.Title
	}
	switch c.Kind {
	case model.KindSuccess:
		return "Success"
	case model.KindInfo:
		return "Info"
	case model.KindWarning:
		return "Warning"
	}
	return "Note"
}

// GenerateMarkdown renders cards as one Markdown document with a table of
// contents. Callouts become blockquotes and overflowing code blocks are
// folded in <details> unless opts.ExpandAll is set.
func GenerateMarkdown(cards []*model.QuestionCard, opts Options) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", opts.title()))

	if len(cards) > 1 {
		sb.WriteString("## Contents\n\n")
		for _, c := range cards {
			sb.WriteString(fmt.Sprintf("- [%s](#%s)\n", c.Title(), anchorFor(c)))
		}
		sb.WriteString("\n")
	}

	for i, c := range cards {
		if i > 0 {
			sb.WriteString("---\n\n")
		}
		writeCardMarkdown(&sb, c, opts)
	}
	return sb.String()
}

func writeCardMarkdown(sb *strings.Builder, c *model.QuestionCard, opts Options) {
	q := c.Question()
	sb.WriteString(fmt.Sprintf("## %s\n\n", q.Title))

	var meta []string
	if q.Category != "" {
		meta = append(meta, fmt.Sprintf("**%s**", q.Category))
	}
	for _, tag := range q.Tags {
		meta = append(meta, "`#"+tag+"`")
	}
	if len(meta) > 0 {
		sb.WriteString(strings.Join(meta, " ") + "\n\n")
	}
	if q.Content != "" {
		sb.WriteString("*" + q.Content + "*\n\n")
	}

	for _, b := range c.Body() {
		if b == nil {
			continue
		}
		sb.WriteString(blockMarkdown(b, opts))
		sb.WriteString("\n\n")
	}
}

func blockMarkdown(b model.Block, opts Options) string {
	switch blk := b.(type) {
	case model.Callout:
		parts := []string{fmt.Sprintf("**%s %s**", calloutMarks[blk.Kind], calloutLabel(blk))}
		for _, child := range blk.Children {
			if child == nil {
				continue
			}
			parts = append(parts, blockMarkdown(child, opts))
		}
		return quote(strings.Join(parts, "\n\n"))

	case model.Code:
		return codeMarkdown(blk, opts)

	case model.Text:
		return strings.TrimSpace(blk.Markup)

	case model.List:
		lines := make([]string, len(blk.Items))
		for i, item := range blk.Items {
			if blk.Ordered {
				lines[i] = fmt.Sprintf("%d. %s", i+1, item)
			} else {
				lines[i] = "- " + item
			}
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

func codeMarkdown(c model.Code, opts Options) string {
	fence := fenceFor(c.Source)
	body := fence + c.Language + "\n" + strings.Join(c.Lines(), "\n") + "\n" + fence

	caption := c.Title
	if caption != "" {
		caption = "`" + caption + "`"
	}
	if !c.Overflows() || opts.ExpandAll {
		if caption == "" {
			return body
		}
		return caption + "\n\n" + body
	}

	summary := fmt.Sprintf("%d lines", c.Height())
	if c.Title != "" {
		summary = c.Title + " · " + summary
	}
	return fmt.Sprintf("<details>\n<summary>%s</summary>\n\n%s\n\n</details>", summary, body)
}

// quote prefixes every line with "> ".
func quote(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + l
		}
	}
	return strings.Join(lines, "\n")
}
