package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagescope"
)

// MaxFeedReads bounds how many discovered feeds are fetched per page.
const MaxFeedReads = 5

var feedTypes = map[string]bool{
	"application/rss+xml":   true,
	"application/atom+xml":  true,
	"application/rdf+xml":   true,
	"application/feed+json": true,
}

// extractFeeds lists the feeds advertised in <link rel="alternate">. With
// a FeedReader the first MaxFeedReads are fetched; a feed that fails to
// load keeps its link data and carries an error note.
func (e *Extractor) extractFeeds(ctx context.Context, in *Input) (any, error) {
	feeds := []pagescope.Feed{}
	seen := make(map[string]bool)

	in.Doc.Find("link[rel][href][type]").Each(func(_ int, s *goquery.Selection) {
		if !hasToken(s.AttrOr("rel", ""), "alternate") {
			return
		}
		typ := strings.ToLower(strings.TrimSpace(s.AttrOr("type", "")))
		if !feedTypes[typ] {
			return
		}
		u := resolveURL(in.Base, strings.TrimSpace(s.AttrOr("href", "")))
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		feeds = append(feeds, pagescope.Feed{
			URL:   u,
			Type:  typ,
			Title: strings.TrimSpace(s.AttrOr("title", "")),
		})
	})

	if e.feeds == nil {
		return feeds, nil
	}
	for i := range feeds {
		if i == MaxFeedReads {
			break
		}
		read, err := e.feeds.ReadFeed(ctx, feeds[i].URL)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return feeds, ctxErr
			}
			feeds[i].Error = errorNote(err)
			continue
		}
		if read.Title != "" {
			feeds[i].Title = read.Title
		}
		feeds[i].Format = read.Format
		feeds[i].Items = read.Items
		feeds[i].Updated = read.Updated
	}
	return feeds, nil
}

// hasToken reports whether the space-separated attribute value contains
// token, ignoring case.
func hasToken(attr, token string) bool {
	for _, f := range strings.Fields(attr) {
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}
