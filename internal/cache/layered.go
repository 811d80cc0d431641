package cache

import "time"

// Layered fronts a disk cache with a memory cache, so repeated lookups
// within one batch run stay off the filesystem.
type Layered struct {
	hot  Cache
	cold Cache
}

// NewLayered creates a memory-over-disk cache sharing one TTL.
func NewLayered(ttl time.Duration, dir string) *Layered {
	return &Layered{
		hot:  NewMemory(ttl),
		cold: NewDisk(dir, ttl),
	}
}

// Get checks memory first, then disk, promoting disk hits to memory.
func (l *Layered) Get(key string) ([]byte, bool) {
	if val, found := l.hot.Get(key); found {
		return val, true
	}
	if val, found := l.cold.Get(key); found {
		_ = l.hot.Set(key, val, 0)
		return val, true
	}
	return nil, false
}

// Set writes through to both layers.
func (l *Layered) Set(key string, value []byte, ttl time.Duration) error {
	if err := l.hot.Set(key, value, ttl); err != nil {
		return err
	}
	return l.cold.Set(key, value, ttl)
}

// Delete removes the entry from both layers.
func (l *Layered) Delete(key string) error {
	_ = l.hot.Delete(key)
	return l.cold.Delete(key)
}

// Clear drops both layers.
func (l *Layered) Clear() error {
	_ = l.hot.Clear()
	return l.cold.Clear()
}
