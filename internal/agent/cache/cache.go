// Package cache provides a TTL-keyed article store with fetch coalescing.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"news-agent/internal/common/metrics"
	"news-agent/internal/models"
)

// FetchFunc produces a fresh payload for a cache key.
type FetchFunc func() ([]models.Article, error)

type entry struct {
	payload    []models.Article
	insertedAt time.Time
}

// Cache is a concurrent TTL cache. Expiry is lazy, checked on read; entries
// are replaced whole, never mutated in place. Concurrent fetches for the
// same key are coalesced into a single in-flight call.
type Cache struct {
	kind string
	ttl  time.Duration

	mu      sync.RWMutex
	entries map[string]entry

	group singleflight.Group

	// nowFn is swappable in tests
	nowFn func() time.Time
}

// New creates a Cache. kind labels the cache in metrics ("headlines",
// "topics", "publications").
func New(kind string, ttl time.Duration) *Cache {
	return &Cache{
		kind:    kind,
		ttl:     ttl,
		entries: make(map[string]entry),
		nowFn:   time.Now,
	}
}

// GetOrFetch returns the live payload for key, or runs fetch to refresh it.
// All concurrent callers for the same key share one fetch and one result.
// A failed fetch is never cached; the error propagates to every coalesced
// caller and the next call may retry immediately. Cancelling ctx abandons
// only this caller's wait: the in-flight fetch completes and other waiters
// still receive its result.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch FetchFunc) ([]models.Article, error) {
	if payload, ok := c.lookup(key); ok {
		metrics.CacheHits.WithLabelValues(c.kind).Inc()
		return payload, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		// A finished flight may have stored a fresh entry between our miss
		// and this call.
		if payload, ok := c.lookup(key); ok {
			return payload, nil
		}

		payload, err := fetch()
		if err != nil {
			return nil, err
		}

		c.store(key, payload)
		return payload, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			metrics.CacheCoalesced.WithLabelValues(c.kind).Inc()
		} else {
			metrics.CacheMisses.WithLabelValues(c.kind).Inc()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.Article), nil
	}
}

func (c *Cache) lookup(key string) ([]models.Article, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.nowFn().Sub(e.insertedAt) >= c.ttl {
		// Stale entries are treated as absent, not returned.
		return nil, false
	}
	return e.payload, true
}

func (c *Cache) store(key string, payload []models.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		payload:    payload,
		insertedAt: c.nowFn(),
	}
}
