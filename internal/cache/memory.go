package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is the in-process cache layer.
type Memory struct {
	store *gocache.Cache
}

// NewMemory creates a memory cache with the given default TTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	cleanup := ttl
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &Memory{store: gocache.New(ttl, cleanup)}
}

// Get retrieves a cached response.
func (m *Memory) Get(key string) ([]byte, bool) {
	val, found := m.store.Get(key)
	if !found {
		return nil, false
	}
	data, ok := val.([]byte)
	return data, ok
}

// Set stores a response. A zero ttl uses the cache default.
func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, value, ttl)
	return nil
}

// Delete removes one entry.
func (m *Memory) Delete(key string) error {
	m.store.Delete(key)
	return nil
}

// Clear drops every entry.
func (m *Memory) Clear() error {
	m.store.Flush()
	return nil
}
