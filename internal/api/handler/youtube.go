package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hszk-dev/tubegate/internal/domain/model"
	"github.com/hszk-dev/tubegate/internal/extractor"
	"github.com/hszk-dev/tubegate/internal/usecase"
)

// downloadEndpoint is the path playlist entries link to for a direct stream
// redirect of an individual video.
const downloadEndpoint = "/api/youtube/download"

// Request/Response types

// DownloadInfo is the default best-stream pick. All fields are null when no
// progressive stream in the preferred container exists.
type DownloadInfo struct {
	Quality   *string `json:"quality"`
	Ext       *string `json:"ext"`
	StreamURL *string `json:"stream_url"`
}

// SubtitleLists carries subtitle-file URLs for one language, split by origin.
// A kind with no track yields an empty list, not an omitted key.
type SubtitleLists struct {
	Manual []string `json:"manual"`
	Auto   []string `json:"auto"`
}

type ChapterResponse struct {
	Title     string  `json:"title"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

type StatsResponse struct {
	Views    *int64 `json:"views"`
	Likes    *int64 `json:"likes"`
	Comments *int64 `json:"comments"`
}

type CreatorResponse struct {
	Channel     string `json:"channel"`
	ChannelURL  string `json:"channel_url"`
	Subscribers *int64 `json:"subscribers"`
}

type StreamFormatResponse struct {
	Height    int     `json:"height"`
	Ext       string  `json:"ext"`
	ABR       float64 `json:"abr,omitempty"`
	StreamURL string  `json:"stream_url"`
}

type Credits struct {
	Creator string `json:"creator"`
}

// VideoResponse is the single-video shape. The base fields are always
// present; each request flag independently attaches one optional section.
// Optional sections use pointer types so that a set flag emits the key even
// when its contents are empty, while an unset flag omits it entirely.
type VideoResponse struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Tags        []string     `json:"tags"`
	Kind        string       `json:"type"`
	Thumbnail   string       `json:"thumbnail"`
	Download    DownloadInfo `json:"download"`
	Credits     Credits      `json:"credits"`
	Options     mapHints     `json:"_options"`

	Downloads *map[string][]StreamFormatResponse `json:"downloads,omitempty"`
	Subtitles *map[string]SubtitleLists          `json:"subtitles,omitempty"`
	Chapters  *[]ChapterResponse                 `json:"chapters,omitempty"`
	Stats     *StatsResponse                     `json:"stats,omitempty"`
	Creator   *CreatorResponse                   `json:"creator,omitempty"`
}

type mapHints map[string]string

type PlaylistInfo struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

type PlaylistEntryResponse struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Download string `json:"download"`
}

// PlaylistResponse is the playlist shape for the flag-based endpoint. It is
// mutually exclusive with the single-video flags.
type PlaylistResponse struct {
	Playlist PlaylistInfo            `json:"playlist"`
	Videos   []PlaylistEntryResponse `json:"videos"`
	Credits  Credits                 `json:"credits"`
	Options  mapHints                `json:"_options"`
}

// videoFlags are the orthogonal response-shaping switches of the flag-based
// endpoint. Any subset may be set.
type videoFlags struct {
	downloads bool
	subtitles bool
	chapters  bool
	stats     bool
	creator   bool
}

// YouTubeHandler serves the public façade endpoints.
type YouTubeHandler struct {
	svc           usecase.VideoService
	credit        string
	playlistLimit int
}

// NewYouTubeHandler creates a new YouTubeHandler. playlistLimit bounds the
// number of entries returned by the playlist listing endpoint.
func NewYouTubeHandler(svc usecase.VideoService, credit string, playlistLimit int) *YouTubeHandler {
	return &YouTubeHandler{svc: svc, credit: credit, playlistLimit: playlistLimit}
}

// Resolve handles GET /api/youtube
func (h *YouTubeHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if !model.SupportedURL(rawURL) {
		Error(w, http.StatusBadRequest, "unsupported_url", "Only YouTube URLs are supported")
		return
	}

	if boolFlag(r, "playlist") {
		playlist, err := h.svc.GetPlaylist(r.Context(), rawURL)
		if err != nil {
			h.handleServiceError(w, err)
			return
		}
		JSON(w, http.StatusOK, h.toPlaylistResponse(playlist, 0))
		return
	}

	meta, err := h.svc.GetVideo(r.Context(), rawURL)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	flags := videoFlags{
		downloads: boolFlag(r, "downloads"),
		subtitles: boolFlag(r, "subtitles"),
		chapters:  boolFlag(r, "chapters"),
		stats:     boolFlag(r, "stats"),
		creator:   boolFlag(r, "creator"),
	}

	JSON(w, http.StatusOK, h.toVideoResponse(meta, flags))
}

func (h *YouTubeHandler) handleServiceError(w http.ResponseWriter, err error) {
	var extErr *extractor.ExtractionError
	switch {
	case errors.Is(err, model.ErrUnsupportedURL):
		Error(w, http.StatusBadRequest, "unsupported_url", "Only YouTube URLs are supported")
	case errors.Is(err, model.ErrNoStream):
		Error(w, http.StatusBadRequest, "no_stream_found", "No suitable stream found")
	case errors.As(err, &extErr):
		if extErr.Timeout() {
			Error(w, http.StatusBadGateway, "extraction_failed", "Upstream extraction timed out")
			return
		}
		Error(w, http.StatusBadGateway, "extraction_failed", "Upstream extraction failed")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

// toVideoResponse builds the single-video response: the mandatory base block
// first, then one optional section per set flag.
func (h *YouTubeHandler) toVideoResponse(meta *model.VideoMetadata, flags videoFlags) VideoResponse {
	resp := VideoResponse{
		Title:       meta.Title,
		Description: meta.Description,
		Tags:        meta.Tags,
		Kind:        string(meta.Kind),
		Thumbnail:   meta.Thumbnail,
		Download:    toDownloadInfo(meta.Progressive.BestProgressive()),
		Credits:     Credits{Creator: h.credit},
		Options:     videoOptionsHint,
	}

	if flags.downloads {
		downloads := make(map[string][]StreamFormatResponse, len(meta.Progressive))
		for _, group := range meta.Progressive {
			formats := make([]StreamFormatResponse, 0, len(group.Formats))
			for _, f := range group.Formats {
				formats = append(formats, StreamFormatResponse{
					Height:    f.Height,
					Ext:       f.Ext,
					ABR:       f.ABR,
					StreamURL: f.URL,
				})
			}
			downloads[group.Resolution] = formats
		}
		resp.Downloads = &downloads
	}

	if flags.subtitles {
		subtitles := map[string]SubtitleLists{
			"en": {
				Manual: trackURLs(meta.Subtitles.Manual["en"]),
				Auto:   trackURLs(meta.Subtitles.Automatic["en"]),
			},
		}
		resp.Subtitles = &subtitles
	}

	if flags.chapters {
		chapters := make([]ChapterResponse, 0, len(meta.Chapters))
		for _, c := range meta.Chapters {
			chapters = append(chapters, ChapterResponse(c))
		}
		resp.Chapters = &chapters
	}

	if flags.stats {
		resp.Stats = &StatsResponse{
			Views:    meta.Stats.Views,
			Likes:    meta.Stats.Likes,
			Comments: meta.Stats.Comments,
		}
	}

	if flags.creator {
		resp.Creator = &CreatorResponse{
			Channel:     meta.Creator.Channel,
			ChannelURL:  meta.Creator.ChannelURL,
			Subscribers: meta.Creator.Subscribers,
		}
	}

	return resp
}

// toPlaylistResponse builds the playlist shape. limit <= 0 means no
// truncation.
func (h *YouTubeHandler) toPlaylistResponse(playlist *model.Playlist, limit int) PlaylistResponse {
	entries := playlist.Entries
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	videos := make([]PlaylistEntryResponse, 0, len(entries))
	for _, e := range entries {
		videos = append(videos, PlaylistEntryResponse{
			Title:    e.Title,
			URL:      e.URL,
			Download: downloadEndpoint + "?url=" + url.QueryEscape(e.URL),
		})
	}

	return PlaylistResponse{
		Playlist: PlaylistInfo{Title: playlist.Title, Count: playlist.Count},
		Videos:   videos,
		Credits:  Credits{Creator: h.credit},
		Options:  playlistOptionsHint,
	}
}

func toDownloadInfo(best *model.StreamFormat) DownloadInfo {
	if best == nil {
		return DownloadInfo{}
	}
	return DownloadInfo{
		Quality:   &best.Resolution,
		Ext:       &best.Ext,
		StreamURL: &best.URL,
	}
}

func trackURLs(tracks []model.SubtitleTrack) []string {
	urls := make([]string, 0, len(tracks))
	for _, t := range tracks {
		urls = append(urls, t.URL)
	}
	return urls
}

func boolFlag(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

var videoOptionsHint = mapHints{
	"downloads": "Use &downloads=true to get all resolutions",
	"subtitles": "Use &subtitles=true to get English subtitles",
	"chapters":  "Use &chapters=true to include chapters",
	"stats":     "Use &stats=true to include views & likes",
	"creator":   "Use &creator=true to include channel info",
	"playlist":  "Use &playlist=true to process entire playlist (heavy)",
}

var playlistOptionsHint = mapHints{
	"playlist": "Use &playlist=true (already enabled)",
	"note":     "Per-video details require individual video requests",
}
