package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/amirasaad/accounts/pkg/domain/account"
)

// MemoryCache implements AccountTypeCache using in-memory storage.
// Entries are kept serialized so callers never share a cached value.
type MemoryCache struct {
	cache map[string]*cacheEntry
	mu    sync.RWMutex
	stop  chan struct{}
	once  sync.Once
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache that evicts expired entries
// every cleanupInterval.
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	c := &MemoryCache{
		cache: make(map[string]*cacheEntry),
		stop:  make(chan struct{}),
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	go c.cleanup(cleanupInterval)
	return c
}

// Get retrieves an account type from cache. A miss returns (nil, nil).
func (c *MemoryCache) Get(_ context.Context, name string) (*account.AccountType, error) {
	c.mu.RLock()
	entry, exists := c.cache[name]
	c.mu.RUnlock()
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	var at account.AccountType
	if err := json.Unmarshal(entry.data, &at); err != nil {
		return nil, err
	}
	return &at, nil
}

// Set stores an account type in cache with TTL.
func (c *MemoryCache) Set(_ context.Context, at *account.AccountType, ttl time.Duration) error {
	data, err := json.Marshal(at)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[at.Name] = &cacheEntry{data: data, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Delete removes an account type from cache.
func (c *MemoryCache) Delete(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, name)
	return nil
}

// Close stops the cleanup goroutine.
func (c *MemoryCache) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

// cleanup removes expired entries from cache
func (c *MemoryCache) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.cache {
				if now.After(entry.expiresAt) {
					delete(c.cache, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
