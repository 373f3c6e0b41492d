package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/cache"
)

const defaultCleanupInterval = 5 * time.Minute

// MemoryCache implements cache.RateCache in process memory. It is the
// fallback when no Redis URL is configured and the fake used in tests.
type MemoryCache struct {
	entries map[string]cacheEntry
	mu      sync.RWMutex
	now     func() time.Time

	stop      chan struct{}
	closeOnce sync.Once
}

var _ cache.RateCache = (*MemoryCache)(nil)

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryCache creates an in-memory cache that sweeps expired entries
// every five minutes until Close.
func NewMemoryCache() *MemoryCache {
	return newMemoryCache(time.Now, defaultCleanupInterval)
}

func newMemoryCache(now func() time.Time, cleanupEvery time.Duration) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]cacheEntry),
		now:     now,
		stop:    make(chan struct{}),
	}
	go c.cleanup(cleanupEvery)
	return c
}

func (c *MemoryCache) Connect(context.Context) error {
	return nil
}

// Get returns the value for key unless it is missing or expired.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || !c.now().Before(entry.expiresAt) {
		return "", false, nil
	}
	return entry.value, true, nil
}

// Set stores value under key with ttl.
func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// Close stops the cleanup goroutine. Stored entries stay readable.
func (c *MemoryCache) Close() error {
	c.closeOnce.Do(func() { close(c.stop) })
	return nil
}

// Len reports how many entries are stored, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *MemoryCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
