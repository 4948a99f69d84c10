// Package http provides net/http implementations of pagescope services:
// a static page fetcher with retries, a robots.txt crawl policy, a link
// checker, a sitemap reader, and the web UI/API server.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fwojciec/pagescope"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// Retry defaults. A page fetch makes at most DefaultMaxRetries+1 attempts.
const (
	DefaultMaxRetries      = 3
	DefaultInitialInterval = 500 * time.Millisecond
	DefaultMaxInterval     = 5 * time.Second

	// DefaultRateLimitDelay is the minimum wait after a 429 response.
	DefaultRateLimitDelay = 10 * time.Second

	// maxRetryAfter caps the wait requested by a Retry-After header.
	maxRetryAfter = time.Minute
)

// DefaultMaxBodySize is the largest response body read, in bytes.
const DefaultMaxBodySize = 10 << 20

// Ensure Fetcher implements pagescope.Fetcher at compile time.
var _ pagescope.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// for static sites only.
type Fetcher struct {
	client          *http.Client
	timeout         time.Duration
	userAgent       string
	maxRetries      uint64
	initialInterval time.Duration
	maxInterval     time.Duration
	rateLimitDelay  time.Duration
	maxBodySize     int64
	notify          func(url string, err error, wait time.Duration)
	now             func() time.Time
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for each HTTP request.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxRetries sets how many times a transient failure is retried.
// Zero disables retries.
func WithMaxRetries(n int) Option {
	return func(f *Fetcher) {
		f.maxRetries = uint64(max(n, 0))
	}
}

// WithRetryIntervals sets the exponential backoff bounds.
func WithRetryIntervals(initial, maxInterval time.Duration) Option {
	return func(f *Fetcher) {
		f.initialInterval = initial
		f.maxInterval = maxInterval
	}
}

// WithRateLimitDelay sets the minimum wait after a 429 response.
func WithRateLimitDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.rateLimitDelay = d
	}
}

// WithMaxBodySize limits how many bytes of a response body are read.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithRetryNotify sets a function called before each retry.
func WithRetryNotify(fn func(url string, err error, wait time.Duration)) Option {
	return func(f *Fetcher) {
		f.notify = fn
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:         DefaultFetchTimeout,
		userAgent:       pagescope.DefaultUserAgent,
		maxRetries:      DefaultMaxRetries,
		initialInterval: DefaultInitialInterval,
		maxInterval:     DefaultMaxInterval,
		rateLimitDelay:  DefaultRateLimitDelay,
		maxBodySize:     DefaultMaxBodySize,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url. Server errors (5xx), rate limiting (429)
// and connection failures are retried with exponential backoff. Other
// non-200 responses fail immediately. All failures return EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*pagescope.Page, error) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = f.initialInterval
	exp.MaxInterval = f.maxInterval
	b := &rateLimitBackOff{BackOff: exp}

	var page *pagescope.Page
	op := func() error {
		p, err := f.fetchOnce(ctx, url)
		if err == nil {
			page = p
			return nil
		}

		var se *StatusError
		if errors.As(err, &se) {
			switch {
			case se.StatusCode == http.StatusTooManyRequests:
				b.limit(max(f.rateLimitDelay, se.RetryAfter))
				return err
			case se.StatusCode >= 500:
				return err
			}
			return backoff.Permanent(err)
		}
		if ctx.Err() != nil || errors.Is(err, errDecode) {
			return backoff.Permanent(err)
		}
		return err
	}

	var notify backoff.Notify
	if f.notify != nil {
		notify = func(err error, wait time.Duration) {
			f.notify(url, err, wait)
		}
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(b, f.maxRetries), ctx)
	if err := backoff.RetryNotify(op, bo, notify); err != nil {
		return nil, pagescope.Errorf(pagescope.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	return page, nil
}

var errDecode = errors.New("decode response body")

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (*pagescope.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	setBrowserHeaders(req, f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			URL:        url,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, err
	}
	// An empty body is a valid page with no content.
	body := raw
	if enc, name, _ := charset.DetermineEncoding(raw, contentType); name != "utf-8" {
		body, err = enc.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errDecode, err)
		}
	}

	return &pagescope.Page{
		URL:         url,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		HTML:        string(body),
		FetchedAt:   f.now(),
	}, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// StatusError is returned for non-200 responses.
type StatusError struct {
	StatusCode int
	URL        string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// rateLimitBackOff stretches the next wait after a rate-limited attempt.
type rateLimitBackOff struct {
	backoff.BackOff
	minWait time.Duration
}

func (b *rateLimitBackOff) limit(d time.Duration) {
	b.minWait = d
}

func (b *rateLimitBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next != backoff.Stop && next < b.minWait {
		next = b.minWait
	}
	b.minWait = 0
	return next
}

// parseRetryAfter reads a Retry-After header given in seconds.
// HTTP-date values are ignored.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return min(time.Duration(secs)*time.Second, maxRetryAfter)
}

func setBrowserHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
}
