package goquery_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/pagescope"
	"github.com/fwojciec/pagescope/goquery"
	"github.com/fwojciec/pagescope/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedPage = `<html><head>
<link rel="alternate" type="application/rss+xml" title="Posts" href="/feed.xml">
<link rel="alternate" type="application/atom+xml" href="https://example.com/atom.xml">
<link rel="Alternate" type="application/feed+json" href="feed.json">
<link rel="alternate" type="application/rss+xml" href="/feed.xml">
<link rel="alternate" hreflang="de" type="text/html" href="/de/">
<link rel="stylesheet" type="text/css" href="/style.css">
</head><body></body></html>`

func TestExtractor_Feeds(t *testing.T) {
	t.Parallel()

	t.Run("discovers advertised feeds", func(t *testing.T) {
		t.Parallel()

		r := extract(t, feedPage)

		f := field(t, r, pagescope.FieldFeeds)
		assert.Equal(t, []pagescope.Feed{
			{URL: "https://example.com/feed.xml", Type: "application/rss+xml", Title: "Posts"},
			{URL: "https://example.com/atom.xml", Type: "application/atom+xml"},
			{URL: "https://example.com/dir/feed.json", Type: "application/feed+json"},
		}, f.Value)
	})

	t.Run("no feeds", func(t *testing.T) {
		t.Parallel()

		r := extract(t, `<html><head><title>x</title></head></html>`)

		assert.Equal(t, []pagescope.Feed{}, field(t, r, pagescope.FieldFeeds).Value)
	})

	t.Run("reads feeds with a reader", func(t *testing.T) {
		t.Parallel()

		updated := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		reader := &mock.FeedReader{
			ReadFeedFn: func(_ context.Context, url string) (*pagescope.Feed, error) {
				if url == "https://example.com/atom.xml" {
					return nil, pagescope.Errorf(pagescope.EUNAVAILABLE, "HTTP 404 for %s", url)
				}
				return &pagescope.Feed{URL: url, Title: "Read " + url, Format: "rss", Items: 3, Updated: &updated}, nil
			},
		}

		r := extract(t, feedPage, goquery.WithFeedReader(reader))

		f := field(t, r, pagescope.FieldFeeds)
		require.Empty(t, f.Error)
		feeds, ok := f.Value.([]pagescope.Feed)
		require.True(t, ok)
		require.Len(t, feeds, 3)

		assert.Equal(t, "Read https://example.com/feed.xml", feeds[0].Title)
		assert.Equal(t, "rss", feeds[0].Format)
		assert.Equal(t, 3, feeds[0].Items)
		assert.Equal(t, &updated, feeds[0].Updated)

		assert.Equal(t, "HTTP 404 for https://example.com/atom.xml", feeds[1].Error)
		assert.Zero(t, feeds[1].Items)
	})
}
