package pagescope

import (
	"net/url"
	"strings"
	"time"
)

// Page represents a fetched web page.
type Page struct {
	// URL is the URL that was requested.
	URL string `json:"url"`

	// FinalURL is the URL after following redirects.
	// Equal to URL when no redirect happened.
	FinalURL string `json:"finalUrl"`

	StatusCode  int       `json:"statusCode"`
	ContentType string    `json:"contentType"`
	HTML        string    `json:"-"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// BaseURL returns the URL relative references on the page resolve against.
func (p *Page) BaseURL() string {
	if p.FinalURL != "" {
		return p.FinalURL
	}
	return p.URL
}

// NormalizeURL validates a user-supplied URL before any network activity.
// A missing scheme defaults to https. Only http and https are accepted.
func NormalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", Errorf(EINVALID, "URL required")
	}

	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported URL scheme %q: use http or https", u.Scheme)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", rawURL)
	}

	return u.String(), nil
}

// Origin returns the scheme and host of a URL (e.g., https://example.com).
// Returns an empty string if the URL cannot be parsed.
func Origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
