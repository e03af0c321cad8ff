package usecase

import (
	"context"

	"github.com/hszk-dev/tubegate/internal/domain/model"
	"github.com/hszk-dev/tubegate/internal/extractor"
)

// VideoService defines the interface for the façade's read operations.
type VideoService interface {
	// GetVideo resolves full metadata for a single video URL.
	GetVideo(ctx context.Context, url string) (*model.VideoMetadata, error)

	// GetPlaylist resolves a shallow listing of a playlist's members.
	GetPlaylist(ctx context.Context, url string) (*model.Playlist, error)
}

type videoService struct {
	ext extractor.Extractor
}

// NewVideoService creates a VideoService backed by the given extractor.
func NewVideoService(ext extractor.Extractor) VideoService {
	return &videoService{ext: ext}
}

// GetVideo validates the URL and delegates to the extractor in single mode.
func (s *videoService) GetVideo(ctx context.Context, url string) (*model.VideoMetadata, error) {
	if !model.SupportedURL(url) {
		return nil, model.ErrUnsupportedURL
	}
	return s.ext.ExtractVideo(ctx, url)
}

// GetPlaylist validates the URL and delegates to the extractor in
// flat-playlist mode.
func (s *videoService) GetPlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	if !model.SupportedURL(url) {
		return nil, model.ErrUnsupportedURL
	}
	return s.ext.ExtractPlaylist(ctx, url)
}
