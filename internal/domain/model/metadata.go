package model

import "time"

// VideoKind classifies a video by its duration.
type VideoKind string

const (
	KindShorts VideoKind = "shorts"
	KindVideo  VideoKind = "video"
)

// shortsMaxDuration is the inclusive duration cutoff below which a video is
// classified as a shorts clip. Videos with unknown duration report zero and
// therefore classify as shorts.
const shortsMaxDuration = 60 * time.Second

// ClassifyDuration returns the VideoKind for the given duration.
func ClassifyDuration(d time.Duration) VideoKind {
	if d <= shortsMaxDuration {
		return KindShorts
	}
	return KindVideo
}

// Chapter is a named time range inside a video.
type Chapter struct {
	Title     string
	StartTime float64
	EndTime   float64
}

// SubtitleTrack is a single subtitle file offered by the platform.
type SubtitleTrack struct {
	URL string
	Ext string
}

// Subtitles holds the available subtitle tracks keyed by language code.
// Manual tracks were uploaded by the creator; Automatic tracks are
// machine-generated captions.
type Subtitles struct {
	Manual    map[string][]SubtitleTrack
	Automatic map[string][]SubtitleTrack
}

// Stats carries engagement counters. Counters the platform withheld are nil.
type Stats struct {
	Views    *int64
	Likes    *int64
	Comments *int64
}

// Creator identifies the channel that published a video.
type Creator struct {
	Channel     string
	ChannelURL  string
	Subscribers *int64
}

// VideoMetadata is the full extraction result for a single video.
// Instances are immutable once stored in the metadata cache; callers must not
// modify a returned value or anything it references.
type VideoMetadata struct {
	Title       string
	Description string
	Tags        []string
	Thumbnail   string
	Duration    time.Duration
	Kind        VideoKind
	Progressive StreamGroups
	Chapters    []Chapter
	Subtitles   Subtitles
	Stats       Stats
	Creator     Creator
}

// PlaylistEntry is one member of a flat playlist listing.
type PlaylistEntry struct {
	Title string
	URL   string
}

// Playlist is the shallow extraction result for a playlist URL. Member
// entries carry only a title and canonical link; per-video details require
// individual extraction.
type Playlist struct {
	Title   string
	Count   int
	Entries []PlaylistEntry
}
