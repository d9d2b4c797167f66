// Package cache keeps recent lookup results in memory so repeat searches
// for the same case skip the scraping pipeline.
package cache

import (
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"courtlookup/internal/scraper"
)

// Cache stores lookup results keyed by case identity.
type Cache interface {
	Get(key string) (*scraper.LookupResult, bool)
	Set(key string, result *scraper.LookupResult)
	Delete(key string)
	Clear()
	Stats() CacheStats
}

// CacheStats is a point-in-time snapshot of cache effectiveness.
type CacheStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Size    int   `json:"size"`
	MaxSize int   `json:"max_size"`
}

// LRUCache bounds a TTL cache to maxSize entries by evicting the entry
// closest to expiry when full.
type LRUCache struct {
	store   *gocache.Cache
	maxSize int

	mu     sync.Mutex
	hits   int64
	misses int64
}

// NewCache builds a cache holding up to maxSize results for ttl each.
func NewCache(maxSize int, ttl time.Duration) *LRUCache {
	return &LRUCache{
		store:   gocache.New(ttl, ttl*2),
		maxSize: maxSize,
	}
}

func (c *LRUCache) Get(key string) (*scraper.LookupResult, bool) {
	value, found := c.store.Get(key)
	c.mu.Lock()
	if found {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()
	if !found {
		return nil, false
	}
	result, ok := value.(*scraper.LookupResult)
	if !ok {
		return nil, false
	}
	return result, true
}

func (c *LRUCache) Set(key string, result *scraper.LookupResult) {
	if c.store.ItemCount() >= c.maxSize {
		c.evictOldest()
	}
	c.store.Set(key, result, gocache.DefaultExpiration)
}

func (c *LRUCache) Delete(key string) {
	c.store.Delete(key)
}

func (c *LRUCache) Clear() {
	c.store.Flush()
}

func (c *LRUCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Hits:    c.hits,
		Misses:  c.misses,
		Size:    c.store.ItemCount(),
		MaxSize: c.maxSize,
	}
}

// evictOldest drops the entry with the nearest expiration time.
func (c *LRUCache) evictOldest() {
	var oldestKey string
	var oldestExpiry int64
	for key, item := range c.store.Items() {
		if oldestKey == "" || item.Expiration < oldestExpiry {
			oldestKey = key
			oldestExpiry = item.Expiration
		}
	}
	if oldestKey != "" {
		c.store.Delete(oldestKey)
	}
}

// GenerateCacheKey derives the cache key for a case identity.
func GenerateCacheKey(caseType, caseNumber, filingYear string) string {
	return fmt.Sprintf("case:%s:%s:%s", caseType, caseNumber, filingYear)
}
