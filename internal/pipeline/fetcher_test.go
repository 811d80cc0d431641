package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/clariview/clariview/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "ClariView-Test/1.0",
		MaxBodyBytes: 1 << 20,
		MaxRetries:   3,
		PerHostRPS:   1000,
		PerHostBurst: 100,
	}
}

func TestFetchWithRetryTransientThenSuccess(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("<html><body>recovered</body></html>"))
	}))
	defer server.Close()

	var slept []time.Duration
	origSleep := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) { slept = append(slept, d) }
	defer func() { fetchSleepFunc = origSleep }()

	f := NewFetcher(testHTTPConfig())
	result, err := f.FetchWithRetry(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchWithRetry() error = %v", err)
	}
	if !strings.Contains(result.HTML, "recovered") {
		t.Errorf("HTML = %q, want body from third attempt", result.HTML)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server calls = %d, want 3", got)
	}
	// Backoff grows quadratically with the attempt number.
	want := []time.Duration{1 * time.Second, 4 * time.Second}
	if len(slept) != len(want) {
		t.Fatalf("sleeps = %v, want %v", slept, want)
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Errorf("sleep[%d] = %v, want %v", i, slept[i], want[i])
		}
	}
}

func TestFetchWithRetryPermanentFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	origSleep := fetchSleepFunc
	fetchSleepFunc = func(time.Duration) { t.Error("slept on a permanent failure") }
	defer func() { fetchSleepFunc = origSleep }()

	f := NewFetcher(testHTTPConfig())
	_, err := f.FetchWithRetry(context.Background(), server.URL)
	if err == nil {
		t.Fatal("FetchWithRetry() error = nil, want status error")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %v, want 404 status", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server calls = %d, want 1 (no retry on 404)", got)
	}
}

func TestFetchWithRetryExhaustsAttempts(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	origSleep := fetchSleepFunc
	fetchSleepFunc = func(time.Duration) {}
	defer func() { fetchSleepFunc = origSleep }()

	cfg := testHTTPConfig()
	cfg.MaxRetries = 2
	f := NewFetcher(cfg)
	_, err := f.FetchWithRetry(context.Background(), server.URL)
	if err == nil {
		t.Fatal("FetchWithRetry() error = nil, want exhaustion error")
	}
	if !strings.Contains(err.Error(), "after 2 attempts") {
		t.Errorf("error = %v, want exhaustion after 2 attempts", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server calls = %d, want 2", got)
	}
}

func TestFetchWithRetryRobotsDisallow(t *testing.T) {
	var articleCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /\n"))
			return
		}
		articleCalls.Add(1)
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.RespectRobots = true
	f := NewFetcher(cfg)
	_, err := f.FetchWithRetry(context.Background(), server.URL+"/article")
	if err == nil {
		t.Fatal("FetchWithRetry() error = nil, want robots disallow")
	}
	if !strings.Contains(err.Error(), "robots.txt") {
		t.Errorf("error = %v, want robots.txt disallow", err)
	}
	if got := articleCalls.Load(); got != 0 {
		t.Errorf("article fetched %d times despite robots disallow", got)
	}
}

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig())
	if _, err := f.FetchWithRetry(context.Background(), server.URL); err != nil {
		t.Fatalf("FetchWithRetry() error = %v", err)
	}
	if gotUA != "ClariView-Test/1.0" {
		t.Errorf("User-Agent = %q, want configured agent", gotUA)
	}
}

func TestFetchTruncatesLargeBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 500)))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 100
	f := NewFetcher(cfg)
	result, err := f.FetchWithRetry(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchWithRetry() error = %v", err)
	}
	if len(result.HTML) != 100 {
		t.Errorf("len(HTML) = %d, want capped at 100", len(result.HTML))
	}
}
