package pagescope

import (
	"context"
	"time"
)

// Sitemap summarizes the sitemaps a site declares.
type Sitemap struct {
	// Sitemaps lists the sitemap URLs that were read, including nested
	// sitemaps referenced from sitemap indexes.
	Sitemaps []string `json:"sitemaps"`

	// URLCount is the number of distinct page URLs across all sitemaps.
	URLCount int `json:"urlCount"`

	// Sample holds the first page URLs in document order.
	Sample []string `json:"sample,omitempty"`

	// LastModified is the newest <lastmod> across all listed pages.
	LastModified *time.Time `json:"lastModified,omitempty"`

	// Skipped lists sitemaps that could not be fetched or parsed.
	Skipped []string `json:"skipped,omitempty"`
}

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverSitemap reads the sitemaps for the site of baseURL.
	// It first checks robots.txt for sitemap directives, then falls back
	// to /sitemap.xml. Sitemap indexes are resolved recursively.
	DiscoverSitemap(ctx context.Context, baseURL string) (*Sitemap, error)
}
