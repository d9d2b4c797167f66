package cache

import (
	"fmt"
	"testing"
	"time"

	"courtlookup/internal/scraper"
)

func sampleResult(caseNumber string) *scraper.LookupResult {
	return &scraper.LookupResult{
		Success: true,
		Source:  scraper.SourceMock,
		Data: &scraper.CaseRecord{
			CaseNumber: caseNumber,
		},
	}
}

func TestCacheSetAndGet(t *testing.T) {
	c := NewCache(10, time.Minute)
	key := GenerateCacheKey("WP(C)", "1234", "2024")

	if _, found := c.Get(key); found {
		t.Error("Get() on empty cache should miss")
	}

	c.Set(key, sampleResult("WP(C) 1234/2024"))

	result, found := c.Get(key)
	if !found {
		t.Fatal("Get() should hit after Set()")
	}
	if result.Data.CaseNumber != "WP(C) 1234/2024" {
		t.Errorf("Cached CaseNumber = %q, want %q", result.Data.CaseNumber, "WP(C) 1234/2024")
	}
}

func TestGenerateCacheKey(t *testing.T) {
	key := GenerateCacheKey("WP(C)", "1234", "2024")
	if key != "case:WP(C):1234:2024" {
		t.Errorf("GenerateCacheKey() = %q, want %q", key, "case:WP(C):1234:2024")
	}

	other := GenerateCacheKey("WP(C)", "1234", "2023")
	if key == other {
		t.Error("Different filing years must produce different keys")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10, 20*time.Millisecond)
	key := GenerateCacheKey("CM", "1", "2022")

	c.Set(key, sampleResult("CM 1/2022"))
	time.Sleep(50 * time.Millisecond)

	if _, found := c.Get(key); found {
		t.Error("Get() should miss after the TTL has passed")
	}
}

func TestCacheEviction(t *testing.T) {
	c := NewCache(3, time.Minute)

	for i := 0; i < 5; i++ {
		key := GenerateCacheKey("FAO", fmt.Sprintf("%d", i), "2024")
		c.Set(key, sampleResult(fmt.Sprintf("FAO %d/2024", i)))
	}

	stats := c.Stats()
	if stats.Size > 3 {
		t.Errorf("Cache size = %d, want at most the max size 3", stats.Size)
	}
}

func TestCacheStats(t *testing.T) {
	c := NewCache(10, time.Minute)
	key := GenerateCacheKey("RFA", "9", "2023")

	c.Get(key)
	c.Set(key, sampleResult("RFA 9/2023"))
	c.Get(key)

	stats := c.Stats()
	if stats.Hits != 1 {
		t.Errorf("Hits = %d, want 1", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
	if stats.MaxSize != 10 {
		t.Errorf("MaxSize = %d, want 10", stats.MaxSize)
	}
}

func TestCacheClear(t *testing.T) {
	c := NewCache(10, time.Minute)
	key := GenerateCacheKey("CRL.A.", "500", "2022")

	c.Set(key, sampleResult("CRL.A. 500/2022"))
	c.Clear()

	if _, found := c.Get(key); found {
		t.Error("Get() should miss after Clear()")
	}
	if c.Stats().Size != 0 {
		t.Errorf("Size = %d after Clear(), want 0", c.Stats().Size)
	}
}

func TestCacheDelete(t *testing.T) {
	c := NewCache(10, time.Minute)
	key := GenerateCacheKey("CM", "7", "2021")

	c.Set(key, sampleResult("CM 7/2021"))
	c.Delete(key)

	if _, found := c.Get(key); found {
		t.Error("Get() should miss after Delete()")
	}
}
