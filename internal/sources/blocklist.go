package sources

import (
	"strings"

	"github.com/clariview/clariview/internal/model"
)

// Blocklist filters out social, video, and messaging platforms from
// bias-pass search results, leaving news sites only.
type Blocklist struct {
	entries []string
}

// NewBlocklist builds a blocklist from the configured entries. A nil
// config falls back to the default table.
func NewBlocklist(cfg *model.SourcesConfig) *Blocklist {
	if cfg == nil {
		cfg = &model.DefaultConfig().Sources
	}

	entries := make([]string, 0, len(cfg.Blocked))
	for _, e := range cfg.Blocked {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			entries = append(entries, e)
		}
	}

	return &Blocklist{entries: entries}
}

// Blocked reports whether rawURL points at a blocked platform. The
// check is substring containment over the lower-cased URL, so it covers
// subdomains and short-link hosts alike. Empty URLs are blocked.
func (b *Blocklist) Blocked(rawURL string) bool {
	if rawURL == "" {
		return true
	}
	lower := strings.ToLower(rawURL)
	for _, entry := range b.entries {
		if strings.Contains(lower, entry) {
			return true
		}
	}
	return false
}
