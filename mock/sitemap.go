package mock

import (
	"context"

	"github.com/fwojciec/pagescope"
)

var _ pagescope.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of pagescope.SitemapService.
type SitemapService struct {
	DiscoverSitemapFn func(ctx context.Context, baseURL string) (*pagescope.Sitemap, error)
}

func (s *SitemapService) DiscoverSitemap(ctx context.Context, baseURL string) (*pagescope.Sitemap, error) {
	return s.DiscoverSitemapFn(ctx, baseURL)
}
