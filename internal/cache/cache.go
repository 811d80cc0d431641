package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/clariview/clariview/internal/model"
)

// Cache stores serialized search responses between runs. A claim
// re-verified within the TTL reuses the previous evidence instead of
// spending another API call.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for one search request. The query is a free
// claim sentence, so it is hashed into a fixed-length key; the result
// cap participates because it changes the response.
func Key(query string, maxResults int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s", maxResults, query)))
	return "clariview:v1:" + hex.EncodeToString(sum[:])
}

// New builds the cache the configuration asks for: memory only by
// default, memory over disk when a cache directory is set, nil (no
// caching) when disabled.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir != "" {
		return NewLayered(cfg.TTL, cfg.Dir)
	}
	return NewMemory(cfg.TTL)
}
