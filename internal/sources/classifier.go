package sources

import (
	"net/url"
	"strings"

	"github.com/clariview/clariview/internal/model"
)

// Classifier decides whether a result domain belongs to the fixed
// allow-list of authoritative outlets. The list is grouped into
// categories for configuration purposes; classification flattens it.
type Classifier struct {
	entries []string
}

// NewClassifier builds a classifier from the configured source groups.
// A nil config falls back to the default tables.
func NewClassifier(cfg *model.SourcesConfig) *Classifier {
	if cfg == nil {
		cfg = &model.DefaultConfig().Sources
	}

	entries := make([]string, 0, len(cfg.International)+len(cfg.RegionalSouthAsia)+len(cfg.FactCheckers))
	for _, group := range [][]string{cfg.International, cfg.RegionalSouthAsia, cfg.FactCheckers} {
		for _, e := range group {
			e = strings.ToLower(strings.TrimSpace(e))
			if e != "" {
				entries = append(entries, e)
			}
		}
	}

	return &Classifier{entries: entries}
}

// IsAuthoritative reports whether domain matches the allow-list.
// Matching is substring containment, not equality, so subdomains of a
// listed outlet (edition.cnn.com) still qualify. domain is expected in
// the form Domain produces.
func (c *Classifier) IsAuthoritative(domain string) bool {
	if domain == "" {
		return false
	}
	for _, entry := range c.entries {
		if strings.Contains(domain, entry) {
			return true
		}
	}
	return false
}

// Domain extracts the comparable domain from a URL: hostname only (no
// port), lower-cased, with a leading "www." stripped. Unparsable input
// yields an empty string.
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www.")
}
