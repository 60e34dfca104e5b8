package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// FragmentConverter converts a markdown snippet to an HTML fragment that can
// be placed into a template unescaped.
type FragmentConverter interface {
	ToFragment(ctx context.Context, content string) (template.HTML, error)
}

// GoldmarkConverter converts markdown prose using goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM tables,
// footnotes, smart punctuation and syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Raw HTML in lesson sources is dropped, not passed through.
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToFragment converts markdown to an HTML fragment. Blank input yields an
// empty fragment. Goldmark has no context support, so conversion runs in a
// goroutine and the caller stops waiting on cancellation.
func (c *GoldmarkConverter) ToFragment(ctx context.Context, content string) (template.HTML, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		// #nosec G203 -- goldmark output with raw HTML disabled
		return template.HTML(r.html), r.err
	}
}
