package pagescope

import (
	"context"
	"time"
)

// Feed is a syndication feed a page links to with
// <link rel="alternate" type="application/rss+xml">.
type Feed struct {
	URL string `json:"url"`

	// Type is the MIME type declared by the link element.
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`

	// Format, Items and Updated are filled when the feed was read.
	Format  string     `json:"format,omitempty"`
	Items   int        `json:"items,omitempty"`
	Updated *time.Time `json:"updated,omitempty"`

	// Error explains why the feed could not be read.
	Error string `json:"error,omitempty"`
}

// FeedReader fetches and parses a feed.
type FeedReader interface {
	ReadFeed(ctx context.Context, url string) (*Feed, error)
}
