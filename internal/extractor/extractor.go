// Package extractor is the sole boundary to the external metadata-extraction
// capability. Everything behind it (page parsing, signature ciphers, manifest
// resolution) belongs to the external tool; this package owns only the
// invocation profiles and the mapping of the raw result onto the typed domain
// model.
package extractor

import (
	"context"

	"github.com/hszk-dev/tubegate/internal/domain/model"
)

// Mode selects the extraction profile.
type Mode string

const (
	// ModeSingle resolves one video's full metadata and all available
	// stream formats; playlist expansion is disabled.
	ModeSingle Mode = "single"

	// ModeFlatPlaylist resolves only a shallow listing of playlist member
	// titles and links, without per-video format resolution.
	ModeFlatPlaylist Mode = "flat_playlist"
)

// Extractor resolves video or playlist metadata from the source platform.
// Implementations perform outbound network I/O and must honor context
// cancellation. No retries are performed; a failure surfaces immediately as
// an *ExtractionError.
type Extractor interface {
	// ExtractVideo resolves full metadata for a single video URL.
	ExtractVideo(ctx context.Context, url string) (*model.VideoMetadata, error)

	// ExtractPlaylist resolves a shallow listing of a playlist's members.
	ExtractPlaylist(ctx context.Context, url string) (*model.Playlist, error)
}
