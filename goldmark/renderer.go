// Package goldmark renders Markdown reports as HTML.
package goldmark

import (
	"bytes"

	"github.com/fwojciec/pagescope"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Ensure Renderer implements pagescope.Renderer at compile time.
var _ pagescope.Renderer = (*Renderer)(nil)

// Renderer converts Markdown to HTML with GitHub-flavored extensions.
// Raw HTML in the input is escaped, since reports quote untrusted pages.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// Render converts markdown to an HTML fragment.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
