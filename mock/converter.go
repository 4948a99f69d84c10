package mock

import "github.com/fwojciec/pagescope"

var _ pagescope.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagescope.Converter.
type Converter struct {
	ConvertFn func(html string, pageURL string) (string, error)
}

func (c *Converter) Convert(html string, pageURL string) (string, error) {
	return c.ConvertFn(html, pageURL)
}

var _ pagescope.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of pagescope.Renderer.
type Renderer struct {
	RenderFn func(markdown string) (string, error)
}

func (r *Renderer) Render(markdown string) (string, error) {
	return r.RenderFn(markdown)
}
