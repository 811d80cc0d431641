package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/clariview/clariview/internal/cache"
	"github.com/clariview/clariview/internal/model"
)

func TestClient_Search_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("Expected path /search, got %s", r.URL.Path)
		}

		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.APIKey != "test-key" {
			t.Errorf("Expected api_key test-key, got %s", req.APIKey)
		}
		if req.Query != "some claim" {
			t.Errorf("Unexpected query: %s", req.Query)
		}
		if req.IncludeAnswer || req.IncludeRawContent {
			t.Error("Expected answer and raw content to be excluded")
		}

		_, _ = w.Write([]byte(`{"results": [{"url": "https://example.com"}]}`))
	}))
	defer server.Close()

	client, err := NewClient(model.SearchConfig{
		APIKey:         "test-key",
		BaseURL:        server.URL,
		Timeout:        5 * time.Second,
		RequestsPerSec: 100,
		Burst:          10,
	}, nil)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	raw, err := client.Search(context.Background(), "some claim", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(Records(raw)) != 1 {
		t.Errorf("Expected 1 record, got %d", len(Records(raw)))
	}
}

func TestClient_Search_CachesResponses(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client, err := NewClient(model.SearchConfig{
		APIKey:         "test-key",
		BaseURL:        server.URL,
		RequestsPerSec: 100,
		Burst:          10,
	}, cache.NewMemory(time.Minute))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := client.Search(context.Background(), "repeat claim", 10); err != nil {
			t.Fatalf("Search %d failed: %v", i, err)
		}
	}

	if calls.Load() != 1 {
		t.Errorf("Expected 1 API call with caching, got %d", calls.Load())
	}

	// Different result cap misses the cache
	if _, err := client.Search(context.Background(), "repeat claim", 5); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("Expected cache miss on different result cap, got %d calls", calls.Load())
	}
}

func TestClient_Search_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "invalid api key"}`))
	}))
	defer server.Close()

	client, err := NewClient(model.SearchConfig{
		APIKey:         "bad-key",
		BaseURL:        server.URL,
		RequestsPerSec: 100,
		Burst:          10,
	}, nil)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	_, err = client.Search(context.Background(), "claim", 10)
	if err == nil {
		t.Fatal("Expected error from API failure, got nil")
	}
}

func TestNewClient_NoAPIKey(t *testing.T) {
	_, err := NewClient(model.SearchConfig{}, nil)
	if err == nil {
		t.Fatal("Expected error when API key is missing, got nil")
	}
}
