package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/temoto/robotstxt"
)

// How long parsed robots.txt data stays cached per host. Long batch
// runs pick up policy changes after expiry.
const robotsTTL = time.Hour

// RobotsChecker consults robots.txt before article fetches. Missing or
// unreachable robots.txt allows the fetch; an explicit disallow blocks
// it.
type RobotsChecker struct {
	store      *gocache.Cache
	httpClient *http.Client
	agent      string
}

// NewRobotsChecker creates a checker identifying as the product token
// of userAgent.
func NewRobotsChecker(userAgent string, timeout time.Duration) *RobotsChecker {
	return &RobotsChecker{
		store:      gocache.New(robotsTTL, 2*robotsTTL),
		httpClient: &http.Client{Timeout: timeout},
		agent:      ProductToken(userAgent),
	}
}

// Check reports whether rawURL may be fetched and any crawl delay the
// site requests for our agent.
func (r *RobotsChecker) Check(ctx context.Context, rawURL string) (bool, time.Duration) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, 0
	}

	data := r.robotsFor(ctx, parsed.Scheme, parsed.Host)
	if data == nil {
		return true, 0
	}

	group := data.FindGroup(r.agent)
	if group == nil {
		return true, 0
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}
	return group.Test(path), group.CrawlDelay
}

// robotsFor returns the cached robots data for host, fetching it on
// first use. nil means no policy could be obtained.
func (r *RobotsChecker) robotsFor(ctx context.Context, scheme, host string) *robotstxt.RobotsData {
	if cached, found := r.store.Get(host); found {
		data, _ := cached.(*robotstxt.RobotsData)
		return data
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", scheme, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", r.agent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		// Unreachable; allow, and leave uncached so the next fetch retries
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	// FromResponse folds status handling in: 4xx allows all, 5xx disallows
	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}

	r.store.Set(host, data, gocache.DefaultExpiration)
	return data
}

// Clear drops all cached robots data.
func (r *RobotsChecker) Clear() {
	r.store.Flush()
}

// ProductToken reduces a full User-Agent string to the bare product
// name robots.txt groups match against ("ClariView/0.1 (+...)" ->
// "ClariView").
func ProductToken(ua string) string {
	fields := strings.Fields(ua)
	if len(fields) == 0 {
		return ua
	}
	return strings.Split(fields[0], "/")[0]
}
