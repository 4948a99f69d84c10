package mock

import "github.com/fwojciec/pagescope"

var _ pagescope.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of pagescope.ArticleExtractor.
type ArticleExtractor struct {
	ExtractFn func(html string, pageURL string) (*pagescope.Article, error)
}

func (e *ArticleExtractor) Extract(html string, pageURL string) (*pagescope.Article, error) {
	return e.ExtractFn(html, pageURL)
}

var _ pagescope.OpenGraphParser = (*OpenGraphParser)(nil)

// OpenGraphParser is a mock implementation of pagescope.OpenGraphParser.
type OpenGraphParser struct {
	ParseOpenGraphFn func(html string) (*pagescope.OpenGraph, error)
}

func (p *OpenGraphParser) ParseOpenGraph(html string) (*pagescope.OpenGraph, error) {
	return p.ParseOpenGraphFn(html)
}
