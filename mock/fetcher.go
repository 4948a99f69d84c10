package mock

import (
	"context"

	"github.com/fwojciec/pagescope"
)

var _ pagescope.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagescope.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*pagescope.Page, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*pagescope.Page, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ pagescope.CrawlPolicy = (*CrawlPolicy)(nil)

// CrawlPolicy is a mock implementation of pagescope.CrawlPolicy.
type CrawlPolicy struct {
	AllowedFn func(ctx context.Context, url string) (bool, error)
}

func (p *CrawlPolicy) Allowed(ctx context.Context, url string) (bool, error) {
	return p.AllowedFn(ctx, url)
}

var _ pagescope.LinkChecker = (*LinkChecker)(nil)

// LinkChecker is a mock implementation of pagescope.LinkChecker.
type LinkChecker struct {
	CheckLinksFn func(ctx context.Context, urls []string) ([]pagescope.LinkStatus, error)
}

func (c *LinkChecker) CheckLinks(ctx context.Context, urls []string) ([]pagescope.LinkStatus, error) {
	return c.CheckLinksFn(ctx, urls)
}
