// Package rod renders pages in headless Chrome before extraction, for
// sites that build their content with JavaScript.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pagescope"
)

// Ensure Fetcher implements pagescope.Fetcher at compile time.
var _ pagescope.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 30 * time.Second

// serializeJS returns the document HTML including open shadow roots, which
// page.HTML() leaves out. Web components often render navigation this way.
const serializeJS = `() => {
	const roots = [];
	const walk = (root) => {
		root.querySelectorAll('*').forEach((el) => {
			if (el.shadowRoot) {
				roots.push(el.shadowRoot);
				walk(el.shadowRoot);
			}
		});
	};
	walk(document);
	if (typeof document.documentElement.getHTML !== 'function') {
		return document.documentElement.outerHTML;
	}
	return '<!DOCTYPE html>' + document.documentElement.getHTML({ shadowRoots: roots });
}`

// statusJS reads the main document's HTTP status. Zero means unknown.
const statusJS = `() => {
	const nav = performance.getEntriesByType('navigation')[0];
	return nav && nav.responseStatus ? nav.responseStatus : 0;
}`

// errClosed is returned by Fetch after Close.
var errClosed = pagescope.Errorf(pagescope.EINVALID, "fetcher is closed")

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Chrome is started by the first Fetch. Fetcher is safe for concurrent use
// by multiple goroutines.
type Fetcher struct {
	browser *browser
	timeout time.Duration
	closed  atomic.Bool
	now     func() time.Time
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each Fetch call.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRecycleAfter restarts the browser after n rendered pages. Zero
// disables recycling.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.browser.recycleAfter = n
	}
}

// WithUserAgent overrides the browser's User-Agent for every page.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.browser.userAgent = ua
	}
}

// WithBrowserBin uses the Chrome binary at path instead of the one the
// launcher finds or downloads.
func WithBrowserBin(path string) Option {
	return func(f *Fetcher) {
		f.browser.bin = path
	}
}

// NewFetcher creates a Fetcher. Close must be called when the Fetcher is
// no longer needed.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		browser: &browser{recycleAfter: DefaultRecycleAfter},
		timeout: DefaultFetchTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to the URL, waits for it to load and returns the
// rendered document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*pagescope.Page, error) {
	if f.closed.Load() {
		return nil, errClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, release, err := f.browser.page()
	if err != nil {
		return nil, err
	}
	defer release()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, contextErr(ctx, fmt.Errorf("navigate %s: %w", url, err))
	}
	if err := page.WaitLoad(); err != nil {
		return nil, contextErr(ctx, fmt.Errorf("wait for %s: %w", url, err))
	}

	status := 0
	if res, err := page.Eval(statusJS); err == nil {
		status = res.Value.Int()
	}
	if status == 0 {
		status = 200
	}
	if status < 200 || status > 299 {
		return nil, pagescope.Errorf(pagescope.EUNAVAILABLE, "HTTP %d for %s", status, url)
	}

	res, err := page.Eval(serializeJS)
	if err != nil {
		return nil, contextErr(ctx, fmt.Errorf("serialize %s: %w", url, err))
	}

	finalURL := url
	if info, err := page.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}

	return &pagescope.Page{
		URL:         url,
		FinalURL:    finalURL,
		StatusCode:  status,
		ContentType: "text/html",
		HTML:        res.Value.Str(),
		FetchedAt:   f.now(),
	}, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.browser.close()
}

// LauncherPID returns the process ID of the browser launcher, or zero when
// Chrome is not running.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}

// contextErr prefers the context's error so callers can match
// context.DeadlineExceeded and context.Canceled.
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	return err
}
