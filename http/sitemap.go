package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/pagescope"
)

const (
	// DefaultMaxSitemaps bounds how many sitemap files are read per site.
	DefaultMaxSitemaps = 50

	// SitemapSampleSize is the number of page URLs kept in Sitemap.Sample.
	SitemapSampleSize = 5
)

// Ensure SitemapService implements pagescope.SitemapService.
var _ pagescope.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client      *http.Client
	userAgent   string
	maxSitemaps int
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client, userAgent string) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = pagescope.DefaultUserAgent
	}
	return &SitemapService{client: client, userAgent: userAgent, maxSitemaps: DefaultMaxSitemaps}
}

// DiscoverSitemap reads the sitemaps of the site at baseURL and counts the
// distinct page URLs they list. A site without sitemaps yields an empty
// Sitemap, not an error. Sitemaps that fail to load are listed in Skipped.
func (s *SitemapService) DiscoverSitemap(ctx context.Context, baseURL string) (*pagescope.Sitemap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, pagescope.Errorf(pagescope.EINVALID, "invalid base URL %q", baseURL)
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	roots, err := s.declaredSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalk{
		svc:     s,
		visited: make(map[string]bool),
		pages:   make(map[string]bool),
		result:  &pagescope.Sitemap{Sitemaps: []string{}},
	}
	for _, u := range roots {
		if err := w.visit(ctx, u); err != nil {
			return nil, err
		}
	}

	slices.Sort(w.result.Sitemaps)
	w.result.URLCount = len(w.pages)
	if !w.latest.IsZero() {
		w.result.LastModified = &w.latest
	}
	return w.result, nil
}

// declaredSitemaps returns the Sitemap directives of robots.txt, or
// /sitemap.xml when robots.txt declares none and that file exists.
func (s *SitemapService) declaredSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots, err := fetchRobots(ctx, s.client, s.userAgent, root)
	if err == nil && len(robots.Sitemaps) > 0 {
		return robots.Sitemaps, nil
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, fallback, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	return []string{fallback}, nil
}

// sitemapWalk accumulates one DiscoverSitemap call.
type sitemapWalk struct {
	svc     *SitemapService
	visited map[string]bool
	pages   map[string]bool
	latest  time.Time
	result  *pagescope.Sitemap
}

// visit reads one sitemap, descending into sitemap indexes. Only context
// errors abort the walk.
func (w *sitemapWalk) visit(ctx context.Context, sitemapURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.visited[sitemapURL] || len(w.visited) >= w.svc.maxSitemaps {
		return nil
	}
	w.visited[sitemapURL] = true

	root, err := w.svc.load(ctx, sitemapURL)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.result.Skipped = append(w.result.Skipped, sitemapURL)
		return nil
	}
	w.result.Sitemaps = append(w.result.Sitemaps, sitemapURL)

	if root.Tag == "sitemapindex" {
		for _, child := range root.SelectElements("sitemap") {
			if loc := elementText(child, "loc"); loc != "" {
				if err := w.visit(ctx, loc); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, entry := range root.SelectElements("url") {
		loc := elementText(entry, "loc")
		if loc == "" || w.pages[loc] {
			continue
		}
		w.pages[loc] = true
		if len(w.result.Sample) < SitemapSampleSize {
			w.result.Sample = append(w.result.Sample, loc)
		}
		if t, ok := parseLastMod(elementText(entry, "lastmod")); ok && t.After(w.latest) {
			w.latest = t
		}
	}
	return nil
}

// load fetches and parses a sitemap. Gzip-compressed sitemaps are
// recognized by their magic bytes, whatever the URL or content type says.
func (s *SitemapService) load(ctx context.Context, sitemapURL string) (*etree.Element, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pagescope.Errorf(pagescope.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, sitemapURL)
	}

	br := bufio.NewReader(resp.Body)
	var body io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("decompressing sitemap: %w", err)
		}
		defer gz.Close()
		body = gz
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}
	return root, nil
}

func elementText(parent *etree.Element, tag string) string {
	el := parent.SelectElement(tag)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// lastModLayouts are the W3C datetime forms sitemaps use.
var lastModLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02",
}

func parseLastMod(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range lastModLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
