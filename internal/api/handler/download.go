package handler

import (
	"net/http"

	"github.com/hszk-dev/tubegate/internal/domain/model"
)

// PlaylistListingResponse is the shape of the listing endpoint. It reports
// how many entries were returned next to the configured cap so consumers can
// tell a short playlist from a truncated one.
type PlaylistListingResponse struct {
	Playlist PlaylistInfo            `json:"playlist"`
	Returned int                     `json:"returned"`
	Limit    int                     `json:"limit"`
	Videos   []PlaylistEntryResponse `json:"videos"`
}

// Download handles GET /api/youtube/download
//
// Resolves the best progressive stream for the URL and answers with a 302
// redirect to it. The stream URL is ephemeral; consumers must follow the
// redirect promptly rather than store the target.
func (h *YouTubeHandler) Download(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")

	meta, err := h.svc.GetVideo(r.Context(), rawURL)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	best := meta.Progressive.BestProgressive()
	if best == nil {
		h.handleServiceError(w, model.ErrNoStream)
		return
	}

	http.Redirect(w, r, best.URL, http.StatusFound)
}

// Playlist handles GET /api/youtube/playlist
func (h *YouTubeHandler) Playlist(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")

	playlist, err := h.svc.GetPlaylist(r.Context(), rawURL)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := h.toPlaylistResponse(playlist, h.playlistLimit)
	JSON(w, http.StatusOK, PlaylistListingResponse{
		Playlist: resp.Playlist,
		Returned: len(resp.Videos),
		Limit:    h.playlistLimit,
		Videos:   resp.Videos,
	})
}
