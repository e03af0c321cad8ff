package cache

import (
	"context"
	"time"

	"github.com/hszk-dev/tubegate/internal/domain/model"
)

// MetadataCache defines the interface for caching extracted video metadata
// keyed by source URL. Implementations must never return an expired entry.
type MetadataCache interface {
	// Get retrieves cached metadata for a URL.
	// Returns nil, nil if no live entry exists (cache miss).
	Get(ctx context.Context, url string) (*model.VideoMetadata, error)

	// Set stores metadata for a URL with the specified TTL, overwriting
	// any previous entry.
	Set(ctx context.Context, url string, meta *model.VideoMetadata, ttl time.Duration) error

	// Delete removes the entry for a URL.
	// Returns nil if the URL was not cached.
	Delete(ctx context.Context, url string) error
}
