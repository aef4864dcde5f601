// Package cache implements the cache module: named TTL caches with shared
// hit/miss statistics, used by the mobile dashboard aggregation.
package cache

import (
	"math"
	"sync"
	"time"
)

type entry struct {
	value   any
	expires time.Time
}

// TTLCache is a string-keyed cache whose entries expire after a fixed TTL.
// Writes past maxEntries trigger a sweep of expired entries first.
type TTLCache struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	stats      *Stats

	// now is swapped in tests to control expiry.
	now func() time.Time
}

// Stats accumulates hit/miss counters, shareable across caches.
type Stats struct {
	mu            sync.Mutex
	hits          int64
	misses        int64
	totalRequests int64
}

// Snapshot is the externally visible statistics document.
type Snapshot struct {
	Hits          int64          `json:"hits"`
	Misses        int64          `json:"misses"`
	TotalRequests int64          `json:"total_requests"`
	HitRate       float64        `json:"hit_rate"` // percent, 2 decimals
	CacheSizes    map[string]int `json:"cache_sizes,omitempty"`
}

// NewStats creates an empty statistics accumulator.
func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) hit() {
	s.mu.Lock()
	s.hits++
	s.totalRequests++
	s.mu.Unlock()
}

func (s *Stats) miss() {
	s.mu.Lock()
	s.misses++
	s.totalRequests++
	s.mu.Unlock()
}

// Snapshot returns the current counters and derived hit rate.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.totalRequests
	if total == 0 {
		total = 1
	}
	rate := float64(s.hits) / float64(total) * 100
	return Snapshot{
		Hits:          s.hits,
		Misses:        s.misses,
		TotalRequests: s.totalRequests,
		HitRate:       math.Round(rate*100) / 100,
	}
}

// Reset zeroes the counters.
func (s *Stats) Reset() {
	s.mu.Lock()
	s.hits, s.misses, s.totalRequests = 0, 0, 0
	s.mu.Unlock()
}

// NewTTLCache creates a cache with the given TTL and size bound. stats may
// be shared between caches; nil disables counting.
func NewTTLCache(ttl time.Duration, maxEntries int, stats *Stats) *TTLCache {
	return &TTLCache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		stats:      stats,
		now:        time.Now,
	}
}

// Get returns the cached value, or false on a miss or expired entry.
// Expired entries are deleted on access.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if ok && c.now().Before(e.expires) {
		if c.stats != nil {
			c.stats.hit()
		}
		return e.value, true
	}
	if ok {
		delete(c.entries, key)
	}
	if c.stats != nil {
		c.stats.miss()
	}
	return nil, false
}

// Set stores a value. At the size bound, expired entries are swept first;
// if the cache is still full the write proceeds anyway, matching the
// original's soft bound.
func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		now := c.now()
		for k, e := range c.entries {
			if !now.Before(e.expires) {
				delete(c.entries, k)
			}
		}
	}
	c.entries[key] = entry{value: value, expires: c.now().Add(c.ttl)}
}

// Len returns the number of entries, including any not yet swept.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}
