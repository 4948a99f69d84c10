package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/pagescope"
	"golang.org/x/sync/errgroup"
)

// DefaultLinkCheckTimeout bounds each HEAD request.
const DefaultLinkCheckTimeout = 5 * time.Second

// DefaultLinkCheckRate is the default number of requests per second per host.
const DefaultLinkCheckRate = 5.0

var _ pagescope.LinkChecker = (*LinkChecker)(nil)

// LinkChecker verifies links with HEAD requests.
// Checks run sequentially unless a higher concurrency is configured.
type LinkChecker struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	concurrency int
	rps         float64
}

// LinkCheckerOption configures a LinkChecker.
type LinkCheckerOption func(*LinkChecker)

// WithCheckTimeout sets the timeout for each HEAD request.
func WithCheckTimeout(d time.Duration) LinkCheckerOption {
	return func(c *LinkChecker) {
		c.timeout = d
	}
}

// WithCheckConcurrency sets how many links are checked at once.
func WithCheckConcurrency(n int) LinkCheckerOption {
	return func(c *LinkChecker) {
		c.concurrency = max(n, 1)
	}
}

// WithCheckRate limits requests per second to each host.
// Zero or negative disables rate limiting.
func WithCheckRate(rps float64) LinkCheckerOption {
	return func(c *LinkChecker) {
		c.rps = rps
	}
}

// WithCheckUserAgent sets the User-Agent header.
func WithCheckUserAgent(ua string) LinkCheckerOption {
	return func(c *LinkChecker) {
		c.userAgent = ua
	}
}

// NewLinkChecker creates a LinkChecker.
func NewLinkChecker(opts ...LinkCheckerOption) *LinkChecker {
	c := &LinkChecker{
		timeout:     DefaultLinkCheckTimeout,
		userAgent:   pagescope.DefaultUserAgent,
		concurrency: 1,
		rps:         DefaultLinkCheckRate,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// CheckLinks issues one HEAD request per URL and returns statuses in input
// order. Only context cancellation is returned as an error; individual
// failures are reported on their LinkStatus.
func (c *LinkChecker) CheckLinks(ctx context.Context, urls []string) ([]pagescope.LinkStatus, error) {
	statuses := make([]pagescope.LinkStatus, len(urls))

	var limiter *DomainLimiter
	if c.rps > 0 {
		limiter = NewDomainLimiter(c.rps)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, u := range urls {
		g.Go(func() error {
			statuses[i] = c.check(gctx, limiter, u)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (c *LinkChecker) check(ctx context.Context, limiter *DomainLimiter, rawURL string) pagescope.LinkStatus {
	status := pagescope.LinkStatus{URL: rawURL}

	u, err := url.Parse(rawURL)
	if err != nil {
		status.Broken = true
		status.Error = err.Error()
		return status
	}

	if limiter != nil {
		if err := limiter.Wait(ctx, u.Host); err != nil {
			status.Broken = true
			status.Error = err.Error()
			return status
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		status.Broken = true
		status.Error = err.Error()
		return status
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		status.Broken = true
		status.Error = err.Error()
		return status
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	status.StatusCode = resp.StatusCode
	status.Broken = resp.StatusCode != http.StatusOK
	return status
}
