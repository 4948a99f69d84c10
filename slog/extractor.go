package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagescope"
)

// Ensure LoggingExtractor implements pagescope.FieldExtractor.
var _ pagescope.FieldExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a FieldExtractor with debug logging.
// Each field that fell back to its default is logged at debug level.
type LoggingExtractor struct {
	next   pagescope.FieldExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pagescope.FieldExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractFields delegates to the wrapped extractor and logs field counts.
func (e *LoggingExtractor) ExtractFields(ctx context.Context, page *pagescope.Page) (result *pagescope.Result, err error) {
	defer func(begin time.Time) {
		var fields, failed int
		if result != nil {
			fields = len(result.Fields)
			for name, msg := range result.Errors() {
				failed++
				e.logger.Debug("field failed", "field", name, "err", msg)
			}
		}
		e.logger.Info("extract",
			"url", page.URL,
			"fields", fields,
			"failed", failed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractFields(ctx, page)
}
