package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clariview/clariview/internal/cache"
	"github.com/clariview/clariview/internal/model"
	"github.com/clariview/clariview/internal/worker"
)

// Client talks to the Tavily search API. Responses are decoded into
// untyped JSON and handed to the normalizer, because the result list
// has arrived under several different shapes across API versions.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *worker.Limiter
	store      cache.Cache
	cacheTTL   time.Duration
}

// Search API structures
type searchRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	MaxResults        int    `json:"max_results"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

type searchError struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// NewClient creates a search client. The API key is required; store
// may be nil to disable response caching.
func NewClient(cfg model.SearchConfig, store cache.Cache) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("search API key is required (set TAVILY_API_KEY)")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.tavily.com"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter:  worker.NewLimiter(cfg.RequestsPerSec, cfg.Burst),
		store:    store,
		cacheTTL: 15 * time.Minute,
	}, nil
}

// SetCacheTTL overrides how long search responses stay cached.
func (c *Client) SetCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		c.cacheTTL = ttl
	}
}

// Search runs one query and returns the decoded response body. The
// shape of the result is deliberately untyped; use Records to get the
// normalized list.
func (c *Client) Search(ctx context.Context, query string, maxResults int) (any, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	key := cache.Key(query, maxResults)
	if c.store != nil {
		if cached, found := c.store.Get(key); found {
			var raw any
			if err := json.Unmarshal(cached, &raw); err == nil {
				return raw, nil
			}
			// Corrupt entry; fall through to a fresh call
		}
	}

	if err := c.limiter.Wait(ctx, c.baseURL); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(searchRequest{
		APIKey:            c.apiKey,
		Query:             query,
		MaxResults:        maxResults,
		IncludeAnswer:     false,
		IncludeRawContent: false,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/search", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr searchError
		if err := json.Unmarshal(respBody, &apiErr); err == nil {
			if apiErr.Detail != "" {
				return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Detail)
			}
			if apiErr.Error != "" {
				return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Error)
			}
		}
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var raw any
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if c.store != nil {
		_ = c.store.Set(key, respBody, c.cacheTTL)
	}

	return raw, nil
}
