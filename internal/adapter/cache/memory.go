// Package cache provides in-process caching of verb query results.
package cache

import (
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/heartmarshall/konjug-backend/internal/domain"
)

// SearchCache caches prefix-search results keyed by prefix and limit.
// A zero TTL disables caching.
//
// Every Flush starts a new generation. Readers take the generation before
// querying the store and pass it to Set, which drops results read before
// the latest Flush.
type SearchCache struct {
	cache *gocache.Cache
	ttl   time.Duration

	mu  sync.Mutex
	gen uint64
}

// NewSearchCache creates a search cache. A cleanupInterval <= 0 disables the
// background janitor; expired items are then dropped lazily on Get.
func NewSearchCache(ttl, cleanupInterval time.Duration) *SearchCache {
	return &SearchCache{
		cache: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

func searchKey(prefix string, limit int) string {
	return strconv.Itoa(limit) + ":" + prefix
}

// Get returns the cached hits for prefix and limit.
func (c *SearchCache) Get(prefix string, limit int) ([]domain.VerbSummary, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	if val, found := c.cache.Get(searchKey(prefix, limit)); found {
		return val.([]domain.VerbSummary), true
	}
	return nil, false
}

// Generation returns the current generation for a later Set.
func (c *SearchCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Set stores hits for prefix and limit with the default TTL. It reports
// false and stores nothing when gen is older than the current generation.
func (c *SearchCache) Set(prefix string, limit int, gen uint64, hits []domain.VerbSummary) bool {
	if c.ttl <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.cache.Set(searchKey(prefix, limit), hits, gocache.DefaultExpiration)
	return true
}

// Flush drops every cached result and advances the generation. Verb writes
// call it since any write can change which verbs a prefix matches.
func (c *SearchCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.cache.Flush()
}

// Len reports the number of cached entries, including expired ones not yet evicted.
func (c *SearchCache) Len() int {
	return c.cache.ItemCount()
}
