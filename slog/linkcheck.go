package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagescope"
)

// Ensure LoggingLinkChecker implements pagescope.LinkChecker.
var _ pagescope.LinkChecker = (*LoggingLinkChecker)(nil)

// LoggingLinkChecker wraps a LinkChecker with debug logging.
type LoggingLinkChecker struct {
	next   pagescope.LinkChecker
	logger *slog.Logger
}

// NewLoggingLinkChecker creates a new LoggingLinkChecker.
func NewLoggingLinkChecker(next pagescope.LinkChecker, logger *slog.Logger) *LoggingLinkChecker {
	return &LoggingLinkChecker{next: next, logger: logger}
}

// CheckLinks delegates to the wrapped checker and logs how many links broke.
func (c *LoggingLinkChecker) CheckLinks(ctx context.Context, urls []string) (statuses []pagescope.LinkStatus, err error) {
	defer func(begin time.Time) {
		broken := 0
		for _, s := range statuses {
			if s.Broken {
				broken++
				c.logger.Debug("broken link", "url", s.URL, "status", s.StatusCode, "err", s.Error)
			}
		}
		c.logger.Info("link check",
			"count", len(urls),
			"broken", broken,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.CheckLinks(ctx, urls)
}
