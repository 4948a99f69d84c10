package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagescope"
)

// Ensure LoggingSitemapService implements pagescope.SitemapService.
var _ pagescope.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with debug logging.
type LoggingSitemapService struct {
	next   pagescope.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next pagescope.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverSitemap delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) DiscoverSitemap(ctx context.Context, baseURL string) (sitemap *pagescope.Sitemap, err error) {
	defer func(begin time.Time) {
		var sitemaps, skipped, count int
		if sitemap != nil {
			sitemaps = len(sitemap.Sitemaps)
			skipped = len(sitemap.Skipped)
			count = sitemap.URLCount
		}
		s.logger.Info("sitemap discovery",
			"url", baseURL,
			"sitemaps", sitemaps,
			"skipped", skipped,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverSitemap(ctx, baseURL)
}
