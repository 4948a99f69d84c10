// Package slog provides logging decorators for pagescope services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagescope"
)

// Ensure LoggingFetcher implements pagescope.Fetcher.
var _ pagescope.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   pagescope.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next pagescope.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (page *pagescope.Page, err error) {
	defer func(begin time.Time) {
		var bytes, status int
		if page != nil {
			bytes = len(page.HTML)
			status = page.StatusCode
		}
		f.logger.Info("fetch",
			"url", url,
			"status", status,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingCrawlPolicy implements pagescope.CrawlPolicy.
var _ pagescope.CrawlPolicy = (*LoggingCrawlPolicy)(nil)

// LoggingCrawlPolicy wraps a CrawlPolicy with debug logging.
type LoggingCrawlPolicy struct {
	next   pagescope.CrawlPolicy
	logger *slog.Logger
}

// NewLoggingCrawlPolicy creates a new LoggingCrawlPolicy.
func NewLoggingCrawlPolicy(next pagescope.CrawlPolicy, logger *slog.Logger) *LoggingCrawlPolicy {
	return &LoggingCrawlPolicy{next: next, logger: logger}
}

// Allowed delegates to the wrapped policy and logs the decision.
func (p *LoggingCrawlPolicy) Allowed(ctx context.Context, url string) (allowed bool, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("crawl policy",
			"url", url,
			"allowed", allowed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Allowed(ctx, url)
}
