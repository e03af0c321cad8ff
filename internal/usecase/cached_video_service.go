package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hszk-dev/tubegate/internal/domain/model"
	"github.com/hszk-dev/tubegate/internal/infrastructure/cache"
	"github.com/hszk-dev/tubegate/internal/infrastructure/metrics"
)

// CachedVideoServiceConfig holds configuration for CachedVideoService.
type CachedVideoServiceConfig struct {
	// CacheTTL is the TTL for cached video metadata.
	CacheTTL time.Duration
}

// DefaultCachedVideoServiceConfig returns the default configuration.
func DefaultCachedVideoServiceConfig() CachedVideoServiceConfig {
	return CachedVideoServiceConfig{
		CacheTTL: 15 * time.Minute,
	}
}

// cachedVideoService wraps VideoService with caching capabilities.
// It implements the decorator pattern to add caching without modifying the
// underlying service.
type cachedVideoService struct {
	delegate VideoService
	cache    cache.MetadataCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedVideoService creates a VideoService that serves GetVideo from the
// metadata cache and coalesces concurrent misses for the same URL into a
// single extraction. Playlist listings are cheap flat extractions and are
// not cached.
func NewCachedVideoService(
	delegate VideoService,
	metadataCache cache.MetadataCache,
	cfg CachedVideoServiceConfig,
) VideoService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCachedVideoServiceConfig().CacheTTL
	}
	return &cachedVideoService{
		delegate: delegate,
		cache:    metadataCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// GetVideo retrieves video metadata with caching.
// Uses singleflight so overlapping misses for one URL trigger at most one
// in-flight extraction.
func (s *cachedVideoService) GetVideo(ctx context.Context, url string) (*model.VideoMetadata, error) {
	result, err, shared := s.sfGroup.Do(url, func() (any, error) {
		return s.getVideoWithCache(ctx, url)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}
	return result.(*model.VideoMetadata), nil
}

// getVideoWithCache implements the cache-aside pattern.
func (s *cachedVideoService) getVideoWithCache(ctx context.Context, url string) (*model.VideoMetadata, error) {
	meta, err := s.cache.Get(ctx, url)
	if err != nil {
		// A broken cache degrades to extraction, it does not fail the request.
		slog.Warn("cache get failed, falling back to extraction",
			"url", url,
			"error", err,
		)
	}

	if meta != nil {
		return meta, nil
	}

	meta, err = s.delegate.GetVideo(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, url, meta, s.cacheTTL); err != nil {
		slog.Warn("failed to cache metadata",
			"url", url,
			"error", err,
		)
	}

	return meta, nil
}

// GetPlaylist delegates to the underlying service.
func (s *cachedVideoService) GetPlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	return s.delegate.GetPlaylist(ctx, url)
}
