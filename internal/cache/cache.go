package cache

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is an in-memory mirror of string-valued settings.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
	Clear()
	Stats() CacheStats
}

type CacheStats struct {
	Hits       int64     `json:"hits"`
	Misses     int64     `json:"misses"`
	Size       int       `json:"size"`
	LastAccess time.Time `json:"last_access"`
}

type MemoryCache struct {
	cache *cache.Cache
	mu    sync.Mutex
	stats CacheStats
}

// NewCache returns a cache whose entries expire after ttl. A ttl of zero
// keeps entries until they are deleted.
func NewCache(ttl time.Duration) Cache {
	expiration, cleanup := cache.NoExpiration, time.Duration(0)
	if ttl > 0 {
		expiration, cleanup = ttl, ttl*2
	}
	return &MemoryCache{cache: cache.New(expiration, cleanup)}
}

func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LastAccess = time.Now()

	if data, found := c.cache.Get(key); found {
		if value, ok := data.(string); ok {
			c.stats.Hits++
			return value, true
		}
	}

	c.stats.Misses++
	return "", false
}

func (c *MemoryCache) Set(key, value string) {
	c.cache.Set(key, value, cache.DefaultExpiration)
}

func (c *MemoryCache) Delete(key string) {
	c.cache.Delete(key)
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
	c.stats = CacheStats{}
}

func (c *MemoryCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Size = c.cache.ItemCount()
	return stats
}
