package store

import (
	"sync"
	"time"

	"github.com/i474232898/property-search/internal/property"
)

type cacheEntry struct {
	result   property.Result
	storedAt time.Time
}

// ResultCache is a concurrency-safe in-memory cache of query results keyed
// by filter snapshot. It implements property.Cache.
type ResultCache struct {
	mu sync.RWMutex

	// key: snapshot key
	data map[string]cacheEntry

	// retention configuration
	maxEntries int           // max number of cached snapshots
	maxAge     time.Duration // entries at least this old are stale

	now func() time.Time
}

// NewResultCache creates a new ResultCache with optional limits.
// If maxEntries or maxAge is <= 0, it is treated as unlimited.
func NewResultCache(maxEntries int, maxAge time.Duration) *ResultCache {
	return &ResultCache{
		data:       make(map[string]cacheEntry),
		maxEntries: maxEntries,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Get returns the cached result for key while it is fresh.
func (c *ResultCache) Get(key string) (property.Result, bool) {
	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok || c.expired(e, now) {
		return property.Result{}, false
	}
	return e.result, true
}

// Put stores r under key, replacing any previous result, and evicts the
// oldest entries beyond maxEntries.
func (c *ResultCache) Put(key string, r property.Result) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = cacheEntry{result: r, storedAt: now}

	for c.maxEntries > 0 && len(c.data) > c.maxEntries {
		var (
			oldestKey string
			oldestAt  time.Time
		)
		for k, e := range c.data {
			if oldestKey == "" || e.storedAt.Before(oldestAt) {
				oldestKey, oldestAt = k, e.storedAt
			}
		}
		delete(c.data, oldestKey)
	}
}

// Prune drops stale entries and returns how many were removed.
func (c *ResultCache) Prune(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.data {
		if c.expired(e, now) {
			delete(c.data, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached entries, stale ones included.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Name identifies the cache in sweeper logs.
func (c *ResultCache) Name() string {
	return "result-cache"
}

func (c *ResultCache) expired(e cacheEntry, now time.Time) bool {
	return c.maxAge > 0 && now.Sub(e.storedAt) >= c.maxAge
}
