package sources

import (
	"testing"

	"github.com/clariview/clariview/internal/model"
)

func TestClassifier_IsAuthoritative(t *testing.T) {
	classifier := NewClassifier(nil)

	tests := []struct {
		domain   string
		expected bool
		desc     string
	}{
		{
			domain:   "bbc.com",
			expected: true,
			desc:     "International outlet exact match",
		},
		{
			domain:   "edition.cnn.com",
			expected: true,
			desc:     "Subdomain of listed outlet matches by containment",
		},
		{
			domain:   "reuters.com",
			expected: true,
			desc:     "Wire service",
		},
		{
			domain:   "timesofindia.com",
			expected: true,
			desc:     "Regional outlet",
		},
		{
			domain:   "politifact.com",
			expected: true,
			desc:     "Fact checker",
		},
		{
			domain:   "randomblog.net",
			expected: false,
			desc:     "Unlisted domain",
		},
		{
			domain:   "bbc.co.uk",
			expected: false,
			desc:     "Different TLD of a listed outlet does not match",
		},
		{
			domain:   "",
			expected: false,
			desc:     "Empty domain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.IsAuthoritative(tt.domain)
			if result != tt.expected {
				t.Errorf("Expected %v for %q, got %v", tt.expected, tt.domain, result)
			}
		})
	}
}

func TestClassifier_CustomConfig(t *testing.T) {
	cfg := &model.SourcesConfig{
		International: []string{"example.org"},
	}
	classifier := NewClassifier(cfg)

	if !classifier.IsAuthoritative("example.org") {
		t.Error("Expected configured domain to be authoritative")
	}
	if classifier.IsAuthoritative("bbc.com") {
		t.Error("Expected default table to be replaced by custom config")
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		url      string
		expected string
		desc     string
	}{
		{
			url:      "https://www.bbc.com/news/world-123",
			expected: "bbc.com",
			desc:     "Leading www stripped",
		},
		{
			url:      "https://Edition.CNN.com/2024/story",
			expected: "edition.cnn.com",
			desc:     "Hostname lower-cased",
		},
		{
			url:      "https://example.com:8080/page",
			expected: "example.com",
			desc:     "Port dropped",
		},
		{
			url:      "https://wwwexample.com/",
			expected: "wwwexample.com",
			desc:     "Only a dotted www prefix is stripped",
		},
		{
			url:      "not a url at all ://",
			expected: "",
			desc:     "Unparsable input yields empty string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := Domain(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %q for %q, got %q", tt.expected, tt.url, result)
			}
		})
	}
}

func TestBlocklist_Blocked(t *testing.T) {
	blocklist := NewBlocklist(nil)

	tests := []struct {
		url      string
		expected bool
		desc     string
	}{
		{
			url:      "https://twitter.com/user/status/1",
			expected: true,
			desc:     "Social platform",
		},
		{
			url:      "https://www.youtube.com/watch?v=abc",
			expected: true,
			desc:     "Video platform with www",
		},
		{
			url:      "https://YOUTU.BE/abc",
			expected: true,
			desc:     "Short-link host, case-insensitive",
		},
		{
			url:      "https://bbc.com/news/article",
			expected: false,
			desc:     "News site passes",
		},
		{
			url:      "",
			expected: true,
			desc:     "Empty URL is blocked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := blocklist.Blocked(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %q, got %v", tt.expected, tt.url, result)
			}
		})
	}
}
