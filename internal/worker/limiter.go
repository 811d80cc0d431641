package worker

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces outbound requests per host. The search API gets one
// instance tuned to its quota; article fetching gets another so batch
// runs stay polite to each publisher.
type Limiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewLimiter creates a limiter allowing requestsPerSecond per host.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// Wait blocks until the host of rawURL has a token available or ctx is
// done.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	return l.hostLimiter(hostKey(rawURL)).Wait(ctx)
}

// WaitWithDelay waits for a token and then an extra delay, used to
// honor robots.txt crawl-delay requests on top of the base rate.
func (l *Limiter) WaitWithDelay(ctx context.Context, rawURL string, delay time.Duration) error {
	if err := l.Wait(ctx, rawURL); err != nil {
		return err
	}
	if delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// hostLimiter returns the limiter for host, creating it on first use.
func (l *Limiter) hostLimiter(host string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.limiters[host]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Re-check; another goroutine may have created it meanwhile
	if lim, ok := l.limiters[host]; ok {
		return lim
	}

	lim = rate.NewLimiter(l.rps, l.burst)
	l.limiters[host] = lim
	return lim
}

// hostKey buckets a URL by lower-cased hostname. Unparsable URLs share
// one bucket rather than erroring; the request itself will fail later
// with a better message.
func hostKey(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
