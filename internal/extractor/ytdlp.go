package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/hszk-dev/tubegate/internal/domain/model"
	"github.com/hszk-dev/tubegate/internal/infrastructure/metrics"
)

// CommandRunner executes an external command and returns its stdout bytes.
// Tests substitute this to avoid invoking the real binary.
type CommandRunner func(ctx context.Context, binary string, args ...string) ([]byte, error)

// YTDLPConfig holds configuration for the yt-dlp backed extractor.
type YTDLPConfig struct {
	// Binary is the path to the yt-dlp executable.
	// If empty, "yt-dlp" will be used (assumes it's in PATH).
	Binary string

	// Timeout bounds a single extraction call. A stalled upstream call is
	// terminated once the timeout elapses.
	// Default: 30s
	Timeout time.Duration
}

// DefaultYTDLPConfig returns a YTDLPConfig with production-ready defaults.
func DefaultYTDLPConfig() YTDLPConfig {
	return YTDLPConfig{
		Binary:  "yt-dlp",
		Timeout: 30 * time.Second,
	}
}

// YTDLP implements Extractor by shelling out to the yt-dlp CLI.
type YTDLP struct {
	config YTDLPConfig
	run    CommandRunner
}

// Compile-time verification that YTDLP implements Extractor.
var _ Extractor = (*YTDLP)(nil)

// NewYTDLP creates a yt-dlp backed extractor.
func NewYTDLP(cfg YTDLPConfig) *YTDLP {
	if strings.TrimSpace(cfg.Binary) == "" {
		cfg.Binary = "yt-dlp"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &YTDLP{
		config: cfg,
		run:    defaultCommandRunner,
	}
}

// WithRunner overrides the command runner. Intended for tests.
func (y *YTDLP) WithRunner(run CommandRunner) *YTDLP {
	y.run = run
	return y
}

// ExtractVideo resolves full metadata for a single video URL.
func (y *YTDLP) ExtractVideo(ctx context.Context, url string) (*model.VideoMetadata, error) {
	info, err := y.invoke(ctx, url, ModeSingle)
	if err != nil {
		return nil, err
	}
	return mapVideo(info), nil
}

// ExtractPlaylist resolves a shallow listing of a playlist's members.
func (y *YTDLP) ExtractPlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	info, err := y.invoke(ctx, url, ModeFlatPlaylist)
	if err != nil {
		return nil, err
	}
	return mapPlaylist(info), nil
}

func (y *YTDLP) invoke(ctx context.Context, url string, mode Mode) (*rawInfo, error) {
	execCtx, cancel := context.WithTimeout(ctx, y.config.Timeout)
	defer cancel()

	args := append(buildArgs(mode), url)

	out, err := y.run(execCtx, y.config.Binary, args...)
	if err != nil {
		if execCtx.Err() != nil {
			err = execCtx.Err()
		}
		metrics.ExtractionsTotal.WithLabelValues(string(mode), metrics.ExtractionStatusError).Inc()
		return nil, &ExtractionError{URL: url, Mode: mode, Err: fmt.Errorf("yt-dlp: %w", err)}
	}

	var info rawInfo
	if err := json.Unmarshal(out, &info); err != nil {
		metrics.ExtractionsTotal.WithLabelValues(string(mode), metrics.ExtractionStatusError).Inc()
		return nil, &ExtractionError{URL: url, Mode: mode, Err: fmt.Errorf("parse yt-dlp response: %w", err)}
	}

	metrics.ExtractionsTotal.WithLabelValues(string(mode), metrics.ExtractionStatusSuccess).Inc()
	return &info, nil
}

// buildArgs constructs the yt-dlp arguments for the given mode.
func buildArgs(mode Mode) []string {
	args := []string{"--dump-single-json", "--no-warnings", "--skip-download"}
	if mode == ModeFlatPlaylist {
		return append(args, "--flat-playlist")
	}
	return append(args, "--no-playlist")
}

func defaultCommandRunner(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	return cmd.Output()
}

// rawInfo mirrors the subset of yt-dlp's JSON output the façade consumes.
type rawInfo struct {
	Title                string                `json:"title"`
	Description          string                `json:"description"`
	Tags                 []string              `json:"tags"`
	Thumbnail            string                `json:"thumbnail"`
	Duration             float64               `json:"duration"`
	Formats              []rawFormat           `json:"formats"`
	Chapters             []rawChapter          `json:"chapters"`
	Subtitles            map[string][]rawTrack `json:"subtitles"`
	AutomaticCaptions    map[string][]rawTrack `json:"automatic_captions"`
	ViewCount            *int64                `json:"view_count"`
	LikeCount            *int64                `json:"like_count"`
	CommentCount         *int64                `json:"comment_count"`
	Uploader             string                `json:"uploader"`
	UploaderURL          string                `json:"uploader_url"`
	ChannelFollowerCount *int64                `json:"channel_follower_count"`
	Entries              []rawEntry            `json:"entries"`
}

type rawFormat struct {
	URL        string  `json:"url"`
	Ext        string  `json:"ext"`
	Height     int     `json:"height"`
	Resolution string  `json:"resolution"`
	VCodec     string  `json:"vcodec"`
	ACodec     string  `json:"acodec"`
	ABR        float64 `json:"abr"`
}

type rawChapter struct {
	Title     string  `json:"title"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

type rawTrack struct {
	URL string `json:"url"`
	Ext string `json:"ext"`
}

type rawEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// mapVideo converts the raw payload into the strict domain schema. This is
// the only place the loosely-typed upstream structure is interpreted; all
// downstream code operates on the typed model.
func mapVideo(info *rawInfo) *model.VideoMetadata {
	duration := time.Duration(info.Duration * float64(time.Second))

	meta := &model.VideoMetadata{
		Title:       info.Title,
		Description: info.Description,
		Tags:        info.Tags,
		Thumbnail:   info.Thumbnail,
		Duration:    duration,
		Kind:        model.ClassifyDuration(duration),
		Subtitles: model.Subtitles{
			Manual:    mapTracks(info.Subtitles),
			Automatic: mapTracks(info.AutomaticCaptions),
		},
		Stats: model.Stats{
			Views:    info.ViewCount,
			Likes:    info.LikeCount,
			Comments: info.CommentCount,
		},
		Creator: model.Creator{
			Channel:     info.Uploader,
			ChannelURL:  info.UploaderURL,
			Subscribers: info.ChannelFollowerCount,
		},
	}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}

	for _, f := range info.Formats {
		// yt-dlp reports "none" for an absent codec. A format qualifies
		// as progressive only when both tracks are present.
		sf := model.StreamFormat{
			Resolution: f.Resolution,
			Height:     f.Height,
			Ext:        f.Ext,
			HasVideo:   f.VCodec != "none",
			HasAudio:   f.ACodec != "none",
			ABR:        f.ABR,
			URL:        f.URL,
		}
		if sf.Progressive() {
			meta.Progressive.Add(sf)
		}
	}

	for _, c := range info.Chapters {
		meta.Chapters = append(meta.Chapters, model.Chapter{
			Title:     c.Title,
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
		})
	}

	return meta
}

func mapTracks(raw map[string][]rawTrack) map[string][]model.SubtitleTrack {
	tracks := make(map[string][]model.SubtitleTrack, len(raw))
	for lang, list := range raw {
		converted := make([]model.SubtitleTrack, 0, len(list))
		for _, t := range list {
			converted = append(converted, model.SubtitleTrack{URL: t.URL, Ext: t.Ext})
		}
		tracks[lang] = converted
	}
	return tracks
}

// mapPlaylist converts a flat-playlist payload into the domain shape. Flat
// entries normally carry a canonical watch URL; older layouts report only an
// ID, in which case the link is derived.
func mapPlaylist(info *rawInfo) *model.Playlist {
	entries := make([]model.PlaylistEntry, 0, len(info.Entries))
	for _, e := range info.Entries {
		link := e.URL
		if link == "" && e.ID != "" {
			link = "https://www.youtube.com/watch?v=" + e.ID
		}
		entries = append(entries, model.PlaylistEntry{Title: e.Title, URL: link})
	}

	return &model.Playlist{
		Title:   info.Title,
		Count:   len(entries),
		Entries: entries,
	}
}
