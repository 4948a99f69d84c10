// Package gofeed reads RSS, Atom and JSON feeds with mmcdole/gofeed.
package gofeed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fwojciec/pagescope"
	"github.com/mmcdole/gofeed"
)

// Ensure Reader implements pagescope.FeedReader at compile time.
var _ pagescope.FeedReader = (*Reader)(nil)

// Reader fetches feeds over HTTP and summarizes them.
type Reader struct {
	client    *http.Client
	userAgent string
}

// NewReader creates a Reader. If client is nil, http.DefaultClient is used.
func NewReader(client *http.Client, userAgent string) *Reader {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = pagescope.DefaultUserAgent
	}
	return &Reader{client: client, userAgent: userAgent}
}

// ReadFeed fetches the feed at url and reports its format, item count and
// the newest timestamp among the feed and its items.
func (r *Reader) ReadFeed(ctx context.Context, url string) (*pagescope.Feed, error) {
	fp := gofeed.NewParser()
	fp.Client = r.client
	fp.UserAgent = r.userAgent

	f, err := fp.ParseURLWithContext(url, ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, pagescope.Errorf(pagescope.EUNAVAILABLE, "HTTP %d for %s", httpErr.StatusCode, url)
		}
		if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
			return nil, pagescope.Errorf(pagescope.EINVALID, "%s is not a feed", url)
		}
		return nil, fmt.Errorf("read feed %s: %w", url, err)
	}

	return summarize(url, f), nil
}

func summarize(url string, f *gofeed.Feed) *pagescope.Feed {
	out := &pagescope.Feed{
		URL:    url,
		Title:  f.Title,
		Format: f.FeedType,
		Items:  len(f.Items),
	}

	var latest time.Time
	consider := func(t *time.Time) {
		if t != nil && t.After(latest) {
			latest = *t
		}
	}
	consider(f.UpdatedParsed)
	consider(f.PublishedParsed)
	for _, item := range f.Items {
		consider(item.UpdatedParsed)
		consider(item.PublishedParsed)
	}
	if !latest.IsZero() {
		latest = latest.UTC()
		out.Updated = &latest
	}
	return out
}
