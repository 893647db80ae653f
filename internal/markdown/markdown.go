// Package markdown turns article sources into HTML: front-matter removal,
// goldmark conversion with syntax highlighting and optional sanitization.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter converts Markdown to HTML.
type Converter interface {
	Convert(src []byte) ([]byte, error)
}

// Options configures a Renderer.
type Options struct {
	HighlightStyle string // chroma style name, "" disables highlighting
	Sanitize       bool   // run the output through a UGC sanitization policy
}

// Renderer is a goldmark-backed Converter. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New builds a Renderer with GFM, automatic heading ids and, when a style is
// given, chroma highlighting of fenced code.
func New(opts Options) *Renderer {
	extensions := []goldmark.Extender{extension.GFM}
	if opts.HighlightStyle != "" {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(opts.HighlightStyle),
		))
	}

	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extensions...),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}

	if opts.Sanitize {
		policy := bluemonday.UGCPolicy()
		// chroma writes inline styles on its spans and pre blocks.
		policy.AllowStyles("color", "background-color", "font-weight", "font-style", "text-decoration").OnElements("span", "pre")
		r.policy = policy
	}
	return r
}

// Convert renders src as HTML.
func (r *Renderer) Convert(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}
	if r.policy != nil {
		return r.policy.SanitizeBytes(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}
