// Package opengraph reads Open Graph metadata with go-opengraph.
package opengraph

import (
	"strings"

	"github.com/dyatlov/go-opengraph/opengraph"
	"github.com/fwojciec/pagescope"
)

// Ensure Parser implements pagescope.OpenGraphParser at compile time.
var _ pagescope.OpenGraphParser = (*Parser)(nil)

// Parser extracts og:* properties from HTML.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseOpenGraph returns the page's Open Graph properties. A page without
// any og:* meta tags yields a zero OpenGraph, not an error.
func (p *Parser) ParseOpenGraph(html string) (*pagescope.OpenGraph, error) {
	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(strings.NewReader(html)); err != nil {
		return nil, err
	}

	result := &pagescope.OpenGraph{
		Title:       og.Title,
		Type:        og.Type,
		URL:         og.URL,
		Description: og.Description,
		SiteName:    og.SiteName,
		Locale:      og.Locale,
	}
	for _, img := range og.Images {
		if img == nil || img.URL == "" {
			continue
		}
		result.Images = append(result.Images, img.URL)
	}
	return result, nil
}
