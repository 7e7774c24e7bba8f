// Package cache is the process-wide key/value store shared by every request.
// It is constructed once at startup, injected into services, and torn down
// with the process; there is no hidden global.
package cache

import (
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/puzpuzpuz/xsync/v3"
)

const (
	defaultCapacity = 10000

	// DefaultTTL applies to most entries; callers with churny data pass a
	// shorter duration.
	DefaultTTL = 30 * time.Minute
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache wraps an LRU store with per-entry expiry and a known-keys set used
// for prefix invalidation. All operations are safe under concurrent use.
type Cache struct {
	store *lru.Cache
	keys  *xsync.MapOf[string, struct{}]
}

func New(capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	store, err := lru.New(capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache store: %w", err)
	}
	return &Cache{
		store: store,
		keys:  xsync.NewMapOf[string, struct{}](),
	}, nil
}

// Set stores value under key and arms its expiry. The store write happens
// before the known-keys write: a key must never be live in the LRU while
// absent from the set, or Invalidate could not reach it.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c.store.Add(key, entry{value: value, expiresAt: time.Now().Add(ttl)})
	c.keys.Store(key, struct{}{})
}

// Get returns the typed value for key. Expired entries are evicted on access
// and reported as misses; a type mismatch is also a miss, never a panic.
func Get[T any](c *Cache, key string) (T, bool) {
	var zero T
	// A miss leaves the known-keys set alone; pruning here could race a
	// concurrent Set and strand its fresh entry outside Invalidate's reach.
	// Stale keys are swept by remove during invalidation instead.
	raw, ok := c.store.Get(key)
	if !ok {
		return zero, false
	}
	ent, ok := raw.(entry)
	if !ok {
		return zero, false
	}
	if time.Now().After(ent.expiresAt) {
		c.remove(key)
		return zero, false
	}
	value, ok := ent.value.(T)
	if !ok {
		return zero, false
	}
	return value, true
}

// Invalidate removes every known key starting with prefix. This is strictly
// a starts-with test, not a pattern match; a prefix matching zero keys is a
// no-op.
func (c *Cache) Invalidate(prefix string) {
	c.keys.Range(func(key string, _ struct{}) bool {
		if strings.HasPrefix(key, prefix) {
			c.remove(key)
		}
		return true
	})
}

// Clear removes all known keys.
func (c *Cache) Clear() {
	c.store.Purge()
	c.keys.Clear()
}

func (c *Cache) remove(key string) {
	c.store.Remove(key)
	c.keys.Delete(key)
}
