package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hszk-dev/tubegate/internal/domain/model"
)

// mockVideoService provides a configurable mock for VideoService.
type mockVideoService struct {
	getVideoFn    func(ctx context.Context, url string) (*model.VideoMetadata, error)
	getPlaylistFn func(ctx context.Context, url string) (*model.Playlist, error)
	getVideoCount atomic.Int32
}

func (m *mockVideoService) GetVideo(ctx context.Context, url string) (*model.VideoMetadata, error) {
	m.getVideoCount.Add(1)
	if m.getVideoFn != nil {
		return m.getVideoFn(ctx, url)
	}
	return nil, nil
}

func (m *mockVideoService) GetPlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	if m.getPlaylistFn != nil {
		return m.getPlaylistFn(ctx, url)
	}
	return nil, nil
}

// mockMetadataCache provides a configurable mock for MetadataCache.
type mockMetadataCache struct {
	mu       sync.RWMutex
	data     map[string]*model.VideoMetadata
	getFn    func(ctx context.Context, url string) (*model.VideoMetadata, error)
	setFn    func(ctx context.Context, url string, meta *model.VideoMetadata, ttl time.Duration) error
	deleteFn func(ctx context.Context, url string) error
}

func newMockMetadataCache() *mockMetadataCache {
	return &mockMetadataCache{
		data: make(map[string]*model.VideoMetadata),
	}
}

func (m *mockMetadataCache) Get(ctx context.Context, url string) (*model.VideoMetadata, error) {
	if m.getFn != nil {
		return m.getFn(ctx, url)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[url], nil
}

func (m *mockMetadataCache) Set(ctx context.Context, url string, meta *model.VideoMetadata, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, url, meta, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[url] = meta
	return nil
}

func (m *mockMetadataCache) Delete(ctx context.Context, url string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, url)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, url)
	return nil
}

// mockExtractor provides a configurable mock for extractor.Extractor.
type mockExtractor struct {
	extractVideoFn    func(ctx context.Context, url string) (*model.VideoMetadata, error)
	extractPlaylistFn func(ctx context.Context, url string) (*model.Playlist, error)
	videoCalls        atomic.Int32
}

func (m *mockExtractor) ExtractVideo(ctx context.Context, url string) (*model.VideoMetadata, error) {
	m.videoCalls.Add(1)
	if m.extractVideoFn != nil {
		return m.extractVideoFn(ctx, url)
	}
	return &model.VideoMetadata{Title: "stub"}, nil
}

func (m *mockExtractor) ExtractPlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	if m.extractPlaylistFn != nil {
		return m.extractPlaylistFn(ctx, url)
	}
	return &model.Playlist{Title: "stub"}, nil
}
