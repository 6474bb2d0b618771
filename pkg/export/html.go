package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/vanderheijden86/kcards/pkg/model"
)

var (
	markdownHTML = goldmark.New(goldmark.WithExtensions(extension.GFM))
	// Text blocks come from content files; their HTML is untrusted.
	sanitizer = bluemonday.UGCPolicy()
)

// renderMarkup converts a text block to sanitized HTML.
func renderMarkup(md string) template.HTML {
	var buf bytes.Buffer
	if err := markdownHTML.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

type htmlBlock struct {
	Kind     string
	Variant  string
	Title    string
	Icon     string
	Language string
	Lines    []string
	Folded   bool
	Summary  string
	Markup   template.HTML
	Items    []string
	Ordered  bool
	Children []htmlBlock
}

type htmlCard struct {
	Anchor   string
	Question model.Question
	Body     []htmlBlock
}

type htmlPage struct {
	Title string
	Cards []htmlCard
}

func htmlBlockOf(b model.Block, opts Options) htmlBlock {
	switch blk := b.(type) {
	case model.Callout:
		hb := htmlBlock{Kind: "callout", Variant: string(blk.Kind), Title: calloutLabel(blk), Icon: calloutMarks[blk.Kind]}
		for _, child := range blk.Children {
			if child == nil {
				continue
			}
			hb.Children = append(hb.Children, htmlBlockOf(child, opts))
		}
		return hb
	case model.Code:
		summary := fmt.Sprintf("%d lines", blk.Height())
		if blk.Title != "" {
			summary = blk.Title + " · " + summary
		}
		return htmlBlock{
			Kind:     "code",
			Title:    blk.Title,
			Language: blk.Language,
			Lines:    blk.Lines(),
			Folded:   blk.Overflows() && !opts.ExpandAll,
			Summary:  summary,
		}
	case model.Text:
		return htmlBlock{Kind: "text", Markup: renderMarkup(blk.Markup)}
	case model.List:
		return htmlBlock{Kind: "list", Items: blk.Items, Ordered: blk.Ordered}
	}
	return htmlBlock{}
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,sans-serif;max-width:860px;margin:2rem auto;padding:0 1rem;color:#1a1a1a}
.card{border-bottom:1px solid #ddd;padding-bottom:1.5rem;margin-bottom:1.5rem}
.badge{background:#e8ddff;color:#6b47d9;border-radius:4px;padding:0 .4rem;font-weight:bold}
.tag{color:#006080;margin-left:.4rem}
.prompt{font-style:italic;color:#555}
.callout{border-left:4px solid;border-radius:4px;padding:.5rem 1rem;margin:1rem 0}
.callout-success{border-color:#007700;background:#effaef}
.callout-info{border-color:#006080;background:#eef7fa}
.callout-warning{border-color:#b06800;background:#fdf5ea}
.callout-secondary{border-color:#888;background:#f5f5f5}
pre{background:#282a36;color:#f8f8f2;padding:.75rem;border-radius:6px;overflow-x:auto}
.caption{font-size:.85rem;color:#555;font-weight:bold}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Cards}}<section class="card" id="{{.Anchor}}">
<h2>{{.Question.Title}}</h2>
<p>{{if .Question.Category}}<span class="badge">{{.Question.Category}}</span>{{end}}{{range .Question.Tags}}<span class="tag">#{{.}}</span>{{end}}</p>
{{if .Question.Content}}<p class="prompt">{{.Question.Content}}</p>{{end}}
{{range .Body}}{{template "block" .}}{{end}}
</section>
{{end}}</body>
</html>
{{define "block"}}{{if eq .Kind "callout"}}<div class="callout callout-{{.Variant}}">
<p><strong>{{.Icon}} {{.Title}}</strong></p>
{{range .Children}}{{template "block" .}}{{end}}</div>
{{else if eq .Kind "code"}}{{if .Folded}}<details>
<summary class="caption">{{.Summary}}</summary>
{{template "pre" .}}</details>
{{else}}{{if .Title}}<div class="caption">{{.Title}}</div>
{{end}}{{template "pre" .}}{{end}}{{else if eq .Kind "text"}}{{.Markup}}
{{else if eq .Kind "list"}}{{if .Ordered}}<ol>{{range .Items}}<li>{{.}}</li>{{end}}</ol>{{else}}<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{end}}{{end}}
{{define "pre"}}<pre><code class="language-{{.Language}}">{{join .Lines}}</code></pre>
{{end}}`

var page = template.Must(template.New("page").Funcs(template.FuncMap{
	"join": func(lines []string) string { return strings.Join(lines, "\n") },
}).Parse(pageTemplate))

// WriteHTML renders cards as a standalone HTML page. Overflowing code blocks
// are folded in <details> unless opts.ExpandAll is set.
func WriteHTML(w io.Writer, cards []*model.QuestionCard, opts Options) error {
	p := htmlPage{Title: opts.title()}
	for _, c := range cards {
		hc := htmlCard{Anchor: anchorFor(c), Question: c.Question()}
		for _, b := range c.Body() {
			if b == nil {
				continue
			}
			hc.Body = append(hc.Body, htmlBlockOf(b, opts))
		}
		p.Cards = append(p.Cards, hc)
	}
	return page.Execute(w, p)
}
