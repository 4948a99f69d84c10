package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagescope"
)

// DefaultSocialDomains are the hosts recognized by the social_links field.
// Subdomains match too (m.facebook.com matches facebook.com).
var DefaultSocialDomains = []string{
	"facebook.com",
	"twitter.com",
	"x.com",
	"instagram.com",
	"linkedin.com",
	"youtube.com",
	"tiktok.com",
	"pinterest.com",
	"reddit.com",
	"github.com",
	"mastodon.social",
	"threads.net",
}

// extractLinks resolves every anchor and classifies it as internal or
// external. Links are deduplicated in document order. Fragment-only hrefs
// and mailto:, tel:, javascript: and data: hrefs are not navigable and
// are left out.
func (e *Extractor) extractLinks(_ context.Context, in *Input) (any, error) {
	origin := pagescope.Origin(in.Base.String())
	links := pagescope.LinkSet{Internal: []string{}, External: []string{}}
	seen := make(map[string]bool)

	in.Doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(in.Base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true

		if e.isInternal(in.Base, origin, resolved) {
			links.Internal = append(links.Internal, resolved)
		} else {
			links.External = append(links.External, resolved)
		}
	})

	return links, nil
}

// isInternal reports whether a resolved link belongs to the page's site.
// By default the page origin only has to appear somewhere in the link,
// so https://example.com.evil.org counts as internal for
// https://example.com. Strict mode compares hosts exactly.
func (e *Extractor) isInternal(base *url.URL, origin, resolved string) bool {
	if e.strictOrigin {
		return isSameHost(base, resolved)
	}
	return origin != "" && strings.Contains(resolved, origin)
}

// extractSocialLinks filters the links field down to social network profiles.
func (e *Extractor) extractSocialLinks(_ context.Context, in *Input) (any, error) {
	links, ok := pagescope.FieldValue[pagescope.LinkSet](in.Result, pagescope.FieldLinks)
	if !ok {
		return nil, pagescope.Errorf(pagescope.EINVALID, "links field unavailable")
	}

	social := []string{}
	for _, link := range links.All() {
		if isSocialLink(link, e.socialDomains) {
			social = append(social, link)
		}
	}
	return social, nil
}

// extractBrokenLinks verifies every link from the links field and keeps
// the ones that failed.
func (e *Extractor) extractBrokenLinks(ctx context.Context, in *Input) (any, error) {
	links, ok := pagescope.FieldValue[pagescope.LinkSet](in.Result, pagescope.FieldLinks)
	if !ok {
		return nil, pagescope.Errorf(pagescope.EINVALID, "links field unavailable")
	}

	statuses, err := e.linkChecker.CheckLinks(ctx, links.All())
	if err != nil {
		return nil, err
	}

	broken := []pagescope.LinkStatus{}
	for _, status := range statuses {
		if status.Broken {
			broken = append(broken, status)
		}
	}
	return broken, nil
}

func isSocialLink(link string, domains []string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed.
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// resolveAny is like resolveURL but keeps the raw value when it cannot be parsed.
func resolveAny(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// This uses exact host matching - subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
