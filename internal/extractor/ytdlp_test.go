package extractor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hszk-dev/tubegate/internal/domain/model"
)

const videoURL = "https://www.youtube.com/watch?v=abc"

func TestYTDLP_ExtractVideo_Args(t *testing.T) {
	y := NewYTDLP(DefaultYTDLPConfig()).WithRunner(func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		if binary != "yt-dlp" {
			t.Errorf("binary = %q, want yt-dlp", binary)
		}
		wantArgs := []string{"--dump-single-json", "--no-warnings", "--skip-download", "--no-playlist", videoURL}
		if len(args) != len(wantArgs) {
			t.Fatalf("args length = %d, want %d (%v)", len(args), len(wantArgs), args)
		}
		for i, want := range wantArgs {
			if args[i] != want {
				t.Errorf("args[%d] = %q, want %q", i, args[i], want)
			}
		}
		return []byte(`{"title":"A video"}`), nil
	})

	meta, err := y.ExtractVideo(context.Background(), videoURL)
	if err != nil {
		t.Fatalf("ExtractVideo failed: %v", err)
	}
	if meta.Title != "A video" {
		t.Errorf("Title = %q, want %q", meta.Title, "A video")
	}
}

func TestYTDLP_ExtractVideo_Mapping(t *testing.T) {
	payload := `{
		"title": "Test",
		"description": "Desc",
		"tags": ["go", "video"],
		"thumbnail": "https://i.ytimg.com/t.jpg",
		"duration": 45,
		"formats": [
			{"url": "u1", "ext": "m4a", "resolution": "audio only", "vcodec": "none", "acodec": "mp4a.40.2", "abr": 128},
			{"url": "u2", "ext": "mp4", "resolution": "640x360", "height": 360, "vcodec": "avc1", "acodec": "mp4a.40.2"},
			{"url": "u3", "ext": "webm", "resolution": "1280x720", "height": 720, "vcodec": "vp9", "acodec": "none"},
			{"url": "u4", "ext": "mp4", "resolution": "854x480", "height": 480, "vcodec": "avc1", "acodec": "mp4a.40.2"}
		],
		"chapters": [{"title": "Intro", "start_time": 0, "end_time": 10}],
		"subtitles": {"en": [{"url": "sub-en", "ext": "vtt"}]},
		"automatic_captions": {"en": [{"url": "auto-en", "ext": "vtt"}], "de": [{"url": "auto-de", "ext": "vtt"}]},
		"view_count": 1000,
		"like_count": 50,
		"comment_count": 7,
		"uploader": "Chan",
		"uploader_url": "https://youtube.com/@chan",
		"channel_follower_count": 9000
	}`

	y := NewYTDLP(DefaultYTDLPConfig()).WithRunner(func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		return []byte(payload), nil
	})

	meta, err := y.ExtractVideo(context.Background(), videoURL)
	if err != nil {
		t.Fatalf("ExtractVideo failed: %v", err)
	}

	if meta.Kind != model.KindShorts {
		t.Errorf("Kind = %v, want shorts for a 45s video", meta.Kind)
	}
	if meta.Duration != 45*time.Second {
		t.Errorf("Duration = %v, want 45s", meta.Duration)
	}

	// Only the two progressive formats qualify; the audio-only and
	// video-only entries are discarded.
	if len(meta.Progressive) != 2 {
		t.Fatalf("expected 2 progressive groups, got %d: %+v", len(meta.Progressive), meta.Progressive)
	}
	if meta.Progressive[0].Resolution != "640x360" || meta.Progressive[1].Resolution != "854x480" {
		t.Errorf("groups out of encounter order: %+v", meta.Progressive)
	}

	best := meta.Progressive.BestProgressive()
	if best == nil || best.URL != "u4" {
		t.Errorf("BestProgressive = %+v, want the 480p mp4", best)
	}

	if len(meta.Chapters) != 1 || meta.Chapters[0].Title != "Intro" {
		t.Errorf("unexpected chapters: %+v", meta.Chapters)
	}
	if got := meta.Subtitles.Manual["en"]; len(got) != 1 || got[0].URL != "sub-en" {
		t.Errorf("unexpected manual subtitles: %+v", got)
	}
	if got := meta.Subtitles.Automatic["de"]; len(got) != 1 {
		t.Errorf("unexpected automatic captions: %+v", meta.Subtitles.Automatic)
	}
	if meta.Stats.Views == nil || *meta.Stats.Views != 1000 {
		t.Errorf("unexpected views: %v", meta.Stats.Views)
	}
	if meta.Creator.Channel != "Chan" || meta.Creator.Subscribers == nil || *meta.Creator.Subscribers != 9000 {
		t.Errorf("unexpected creator: %+v", meta.Creator)
	}
}

func TestYTDLP_ExtractVideo_MissingOptionalFields(t *testing.T) {
	y := NewYTDLP(DefaultYTDLPConfig()).WithRunner(func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		return []byte(`{"title":"Bare"}`), nil
	})

	meta, err := y.ExtractVideo(context.Background(), videoURL)
	if err != nil {
		t.Fatalf("ExtractVideo failed: %v", err)
	}
	if meta.Tags == nil || len(meta.Tags) != 0 {
		t.Errorf("Tags = %v, want empty non-nil slice", meta.Tags)
	}
	if meta.Stats.Views != nil {
		t.Errorf("Views = %v, want nil for withheld counter", meta.Stats.Views)
	}
	if meta.Progressive.BestProgressive() != nil {
		t.Error("expected no stream pick without formats")
	}
}

func TestYTDLP_ExtractPlaylist(t *testing.T) {
	payload := `{
		"title": "My list",
		"entries": [
			{"id": "a1", "title": "First", "url": "https://www.youtube.com/watch?v=a1"},
			{"id": "b2", "title": "Second"}
		]
	}`

	y := NewYTDLP(DefaultYTDLPConfig()).WithRunner(func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		wantMode := "--flat-playlist"
		if args[len(args)-2] != wantMode {
			t.Errorf("expected %s flag, got args %v", wantMode, args)
		}
		return []byte(payload), nil
	})

	playlist, err := y.ExtractPlaylist(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	if err != nil {
		t.Fatalf("ExtractPlaylist failed: %v", err)
	}

	if playlist.Title != "My list" || playlist.Count != 2 {
		t.Errorf("unexpected playlist: %+v", playlist)
	}
	if playlist.Entries[0].URL != "https://www.youtube.com/watch?v=a1" {
		t.Errorf("unexpected first entry: %+v", playlist.Entries[0])
	}
	// Entries without a URL derive the canonical link from the ID.
	if playlist.Entries[1].URL != "https://www.youtube.com/watch?v=b2" {
		t.Errorf("unexpected derived link: %+v", playlist.Entries[1])
	}
}

func TestYTDLP_CommandFailure(t *testing.T) {
	cmdErr := errors.New("exit status 1")
	y := NewYTDLP(DefaultYTDLPConfig()).WithRunner(func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		return nil, cmdErr
	})

	_, err := y.ExtractVideo(context.Background(), videoURL)

	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected *ExtractionError, got %v", err)
	}
	if !errors.Is(err, cmdErr) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
	if extErr.Timeout() {
		t.Error("command failure must not report as timeout")
	}
}

func TestYTDLP_ParseFailure(t *testing.T) {
	y := NewYTDLP(DefaultYTDLPConfig()).WithRunner(func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		return []byte("not json"), nil
	})

	var extErr *ExtractionError
	if _, err := y.ExtractVideo(context.Background(), videoURL); !errors.As(err, &extErr) {
		t.Fatalf("expected *ExtractionError, got %v", err)
	}
}

func TestYTDLP_Timeout(t *testing.T) {
	y := NewYTDLP(YTDLPConfig{Timeout: 10 * time.Millisecond}).WithRunner(func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	_, err := y.ExtractVideo(context.Background(), videoURL)

	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected *ExtractionError, got %v", err)
	}
	if !extErr.Timeout() {
		t.Errorf("expected timeout subtype, got %v", err)
	}
}
