// Package trafilatura extracts article content with go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/pagescope"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagescope.ArticleExtractor at compile time.
var _ pagescope.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	fallback bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFallback toggles the readability and dom-distiller fallbacks
// go-trafilatura runs when its own heuristics find little content.
// Enabled by default.
func WithFallback(enabled bool) Option {
	return func(e *Extractor) {
		e.fallback = enabled
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{fallback: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*pagescope.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagescope.Errorf(pagescope.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: e.fallback,
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	meta := result.Metadata
	article := &pagescope.Article{
		Title:       meta.Title,
		Author:      meta.Author,
		SiteName:    meta.Sitename,
		Excerpt:     meta.Description,
		Text:        strings.TrimSpace(result.ContentText),
		ContentHTML: contentHTML,
	}
	if !meta.Date.IsZero() {
		article.Date = meta.Date.Format("2006-01-02")
	}
	return article, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
