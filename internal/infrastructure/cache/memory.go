package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hszk-dev/tubegate/internal/domain/model"
	"github.com/hszk-dev/tubegate/internal/infrastructure/metrics"
)

type memoryEntry struct {
	meta    *model.VideoMetadata
	expires time.Time
}

// MemoryCache implements MetadataCache with a process-local map. Expiry is
// checked at read time; a stale entry stays allocated until the next Set for
// its URL overwrites it. Memory growth is bounded by the number of distinct
// URLs ever requested, which is acceptable for the deployments this serves.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	now   func() time.Time
}

// Compile-time verification that MemoryCache implements MetadataCache.
var _ MetadataCache = (*MemoryCache)(nil)

// NewMemoryCache creates an empty in-memory metadata cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

// Get retrieves a live entry for the URL. An expired entry is reported as a
// miss and left in place for the following Set to overwrite.
func (c *MemoryCache) Get(ctx context.Context, url string) (*model.VideoMetadata, error) {
	c.mu.RLock()
	entry, ok := c.items[url]
	c.mu.RUnlock()

	if !ok || !c.now().Before(entry.expires) {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheTypeMemory).Inc()
		return nil, nil
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit, metrics.CacheTypeMemory).Inc()
	return entry.meta, nil
}

// Set stores metadata for the URL, overwriting any previous entry.
func (c *MemoryCache) Set(ctx context.Context, url string, meta *model.VideoMetadata, ttl time.Duration) error {
	c.mu.Lock()
	c.items[url] = memoryEntry{meta: meta, expires: c.now().Add(ttl)}
	c.mu.Unlock()

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess, metrics.CacheTypeMemory).Inc()
	return nil
}

// Delete removes the entry for the URL.
func (c *MemoryCache) Delete(ctx context.Context, url string) error {
	c.mu.Lock()
	delete(c.items, url)
	c.mu.Unlock()

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess, metrics.CacheTypeMemory).Inc()
	return nil
}
