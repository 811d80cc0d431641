package pipeline

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/clariview/clariview/internal/model"
	"github.com/clariview/clariview/internal/util"
	"github.com/clariview/clariview/internal/worker"
)

// fetchSleepFunc is the sleep function used between retries (injectable for tests)
var fetchSleepFunc = time.Sleep

// Fetcher retrieves article HTML. Fetching is the one retried external
// call in the system: a transient failure here would otherwise kill
// the whole run before any verification happened.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	maxRetries int
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	verbose    bool
}

// NewFetcher creates a fetcher from the HTTP configuration.
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	maxRedirects := cfg.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = 3
	}

	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	f := &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBodyBytes,
		maxRetries: cfg.MaxRetries,
		limiter:    worker.NewLimiter(cfg.PerHostRPS, cfg.PerHostBurst),
	}
	if f.maxBytes <= 0 {
		f.maxBytes = 2_000_000
	}
	if f.maxRetries <= 0 {
		f.maxRetries = 3
	}
	if cfg.RespectRobots {
		f.robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	return f
}

// SetVerbose enables retry logging to stderr.
func (f *Fetcher) SetVerbose(v bool) { f.verbose = v }

// FetchResult contains the fetched HTML and where it came from.
type FetchResult struct {
	HTML       string
	FinalURL   string
	StatusCode int
}

// FetchWithRetry fetches rawURL, retrying transient failures (5xx,
// 429, network errors) with exponential backoff. Permanent failures
// (other 4xx, robots disallow) return immediately.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	var crawlDelay time.Duration
	if f.robots != nil {
		allowed, delay := f.robots.Check(ctx, rawURL)
		if !allowed {
			return nil, fmt.Errorf("robots.txt disallows fetching %s", rawURL)
		}
		crawlDelay = delay
	}

	var lastErr error
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
		crawlDelay = 0 // honored once, before the first attempt

		result, err := f.fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isTransient(err) {
			return nil, err
		}
		if attempt < f.maxRetries {
			backoff := time.Duration(attempt*attempt) * time.Second
			if f.verbose {
				fmt.Fprintf(os.Stderr, "⚠️  Fetch attempt %d/%d failed (%v), retrying in %v\n", attempt, f.maxRetries, err, backoff)
			}
			fetchSleepFunc(backoff)
		}
	}

	return nil, fmt.Errorf("fetch failed after %d attempts: %w", f.maxRetries, lastErr)
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &fetchError{transient: true, err: fmt.Errorf("fetch: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		transient := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, &fetchError{
			transient: transient,
			err:       fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, &fetchError{transient: true, err: fmt.Errorf("read body: %w", err)}
	}

	return &FetchResult{
		HTML:       string(body),
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
	}, nil
}

// fetchError tags an error with whether a retry could help.
type fetchError struct {
	transient bool
	err       error
}

func (e *fetchError) Error() string { return e.err.Error() }
func (e *fetchError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var fe *fetchError
	if errors.As(err, &fe) {
		return fe.transient
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
