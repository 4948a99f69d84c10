package mock

import (
	"context"

	"github.com/fwojciec/pagescope"
)

var _ pagescope.FeedReader = (*FeedReader)(nil)

// FeedReader is a mock implementation of pagescope.FeedReader.
type FeedReader struct {
	ReadFeedFn func(ctx context.Context, url string) (*pagescope.Feed, error)
}

func (r *FeedReader) ReadFeed(ctx context.Context, url string) (*pagescope.Feed, error) {
	return r.ReadFeedFn(ctx, url)
}
