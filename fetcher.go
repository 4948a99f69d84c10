package pagescope

import "context"

// DefaultUserAgent is the client identity sent with every request.
// Many sites reject requests without a browser-like User-Agent.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher retrieves HTML pages.
type Fetcher interface {
	// Fetch performs a single GET for the URL and returns the page.
	// Returns EUNAVAILABLE for non-200 responses and connection errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Page, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// CrawlPolicy answers whether a URL may be fetched by this client,
// according to the rules the site declares (robots.txt).
type CrawlPolicy interface {
	// Allowed reports whether the URL's path may be fetched.
	// A missing or unreachable policy file allows everything.
	Allowed(ctx context.Context, url string) (bool, error)
}

// LinkStatus is the outcome of verifying a single link.
type LinkStatus struct {
	URL        string `json:"url"`
	StatusCode int    `json:"statusCode,omitempty"`
	Broken     bool   `json:"broken"`
	Error      string `json:"error,omitempty"`
}

// LinkChecker verifies that links resolve.
type LinkChecker interface {
	// CheckLinks issues one HEAD request per URL. Any non-200 response or
	// request failure marks the link broken. Results keep input order.
	CheckLinks(ctx context.Context, urls []string) ([]LinkStatus, error)
}
