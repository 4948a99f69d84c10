// Package readability extracts article content with go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/pagescope"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pagescope.ArticleExtractor at compile time.
var _ pagescope.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
// Relative links in the content are resolved against pageURL when it parses.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*pagescope.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagescope.Errorf(pagescope.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, err
	}

	result := &pagescope.Article{
		Title:       article.Title,
		Author:      article.Byline,
		SiteName:    article.SiteName,
		Excerpt:     article.Excerpt,
		Text:        strings.TrimSpace(article.TextContent),
		ContentHTML: article.Content,
	}
	if article.PublishedTime != nil {
		result.Date = article.PublishedTime.Format("2006-01-02")
	}
	return result, nil
}
