package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fwojciec/pagescope"
	"github.com/temoto/robotstxt"
)

// DefaultRobotsAgent is the product token matched against robots.txt groups.
const DefaultRobotsAgent = "pagescope"

// maxRobotsSize bounds how much of a robots.txt file is read.
const maxRobotsSize = 512 << 10

var _ pagescope.CrawlPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy answers crawl policy questions from a site's robots.txt.
type RobotsPolicy struct {
	client    *http.Client
	agent     string
	userAgent string
}

// NewRobotsPolicy creates a RobotsPolicy. agent is the token matched
// against User-agent groups; userAgent is sent as the request header.
// If client is nil, http.DefaultClient is used.
func NewRobotsPolicy(client *http.Client, agent, userAgent string) *RobotsPolicy {
	if client == nil {
		client = http.DefaultClient
	}
	if agent == "" {
		agent = DefaultRobotsAgent
	}
	if userAgent == "" {
		userAgent = pagescope.DefaultUserAgent
	}
	return &RobotsPolicy{client: client, agent: agent, userAgent: userAgent}
}

// Allowed reports whether the agent may fetch rawURL.
// A missing robots.txt, a server error, or a connection failure allows
// everything.
func (p *RobotsPolicy) Allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false, pagescope.Errorf(pagescope.EINVALID, "invalid URL %q", rawURL)
	}

	robots, err := fetchRobots(ctx, p.client, p.userAgent, u)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return true, nil
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return robots.TestAgent(path, p.agent), nil
}

// fetchRobots retrieves and parses robots.txt for the site of u.
// Server errors are reported as errors rather than as a full disallow.
func fetchRobots(ctx context.Context, client *http.Client, userAgent string, u *url.URL) (*robotstxt.RobotsData, error) {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, robotsURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsSize))
	if err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	robots, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("parsing robots.txt: %w", err)
	}
	return robots, nil
}
