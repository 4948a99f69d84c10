// Package inspect binds a fetcher, a crawl policy and a field extractor
// into a single page inspection.
package inspect

import (
	"context"

	"github.com/fwojciec/pagescope"
)

var _ pagescope.Inspector = (*Inspector)(nil)

// Inspector runs validate, policy check, fetch and extract for one URL.
type Inspector struct {
	Fetcher   pagescope.Fetcher
	Extractor pagescope.FieldExtractor

	// Policy is optional. When nil every URL may be fetched.
	Policy pagescope.CrawlPolicy
}

// Inspect returns the extracted fields for rawURL.
//
// An invalid URL fails with EINVALID before any network activity. A URL
// disallowed by the crawl policy fails with EFORBIDDEN, and a failed fetch
// with EUNAVAILABLE. Once a page is fetched, per-field failures are
// recorded on the result and never abort it.
func (i *Inspector) Inspect(ctx context.Context, rawURL string) (*pagescope.Result, error) {
	u, err := pagescope.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	if i.Policy != nil {
		allowed, err := i.Policy.Allowed(ctx, u)
		if err != nil {
			return nil, pagescope.Errorf(pagescope.EUNAVAILABLE, "check robots.txt for %s: %v", u, err)
		}
		if !allowed {
			return nil, pagescope.Errorf(pagescope.EFORBIDDEN, "%s is disallowed by robots.txt", u)
		}
	}

	page, err := i.Fetcher.Fetch(ctx, u)
	if err != nil {
		if pagescope.ErrorCode(err) == pagescope.EINTERNAL {
			return nil, pagescope.Errorf(pagescope.EUNAVAILABLE, "fetch %s: %v", u, err)
		}
		return nil, err
	}

	return i.Extractor.ExtractFields(ctx, page)
}
