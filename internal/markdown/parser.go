package markdown

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Parser renders diary text as Markdown. The renderer runs without
// WithUnsafe, so raw HTML and javascript: links are omitted from the output.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Linkify,
			extension.TaskList,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
		),
	)

	return &Parser{
		md: md,
	}
}

func (p *Parser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HTML renders text for direct inclusion in a page. On a conversion error
// the escaped plain text is returned instead.
func (p *Parser) HTML(text string) template.HTML {
	out, err := p.Parse([]byte(text))
	if err != nil {
		slog.Warn("markdown render failed, falling back to plain text", "error", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(out)
}
