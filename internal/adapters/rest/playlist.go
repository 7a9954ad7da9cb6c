package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seotrue/Feelist/internal/core/domain"
)

type createPlaylistRequest struct {
	Analysis *domain.MoodDescriptor `json:"analysis"`
}

type createPlaylistResponse struct {
	Playlist          domain.Playlist `json:"playlist"`
	SpotifyPlaylistID string          `json:"spotifyPlaylistId"`
}

// createPlaylist handles POST /api/playlist.
func (h *Handler) createPlaylist(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		h.writeError(w, r, &domain.AuthError{Reason: "missing bearer token"})
		return
	}

	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	if req.Analysis == nil {
		h.writeError(w, r, &domain.ValidationError{Field: "analysis", Reason: "is required"})
		return
	}

	token, err := h.freshToken(r, token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	playlist, err := h.svc.CreatePlaylist(r.Context(), token, *req.Analysis)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createPlaylistResponse{
		Playlist:          playlist,
		SpotifyPlaylistID: playlist.ID,
	})
}

// freshToken swaps an expired access token for a refreshed one when the
// token belongs to a known session. Tokens with no stored session pass
// through untouched and fail upstream if stale.
func (h *Handler) freshToken(r *http.Request, token string) (string, error) {
	session, err := h.sessions.GetByAccessToken(r.Context(), token)
	if err != nil || session == nil {
		return token, err
	}

	fresh, err := h.flow.EnsureFresh(r.Context(), session)
	if err != nil {
		return "", err
	}
	if fresh.AccessToken != token {
		if err := h.sessions.Save(r.Context(), fresh); err != nil {
			return "", err
		}
	}
	return fresh.AccessToken, nil
}

type shareView struct {
	ID         string `json:"id"`
	SpotifyURL string `json:"spotifyUrl"`
	EmbedURL   string `json:"embedUrl"`
}

type sharePlaylistResponse struct {
	Playlist shareView `json:"playlist"`
}

// sharePlaylist handles GET /api/playlist/{id}. No auth: the view is built
// from the public playlist id alone.
func (h *Handler) sharePlaylist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, r, &domain.ValidationError{Field: "id", Reason: "is required"})
		return
	}

	writeJSON(w, http.StatusOK, sharePlaylistResponse{
		Playlist: shareView{
			ID:         id,
			SpotifyURL: "https://open.spotify.com/playlist/" + id,
			EmbedURL:   "https://open.spotify.com/embed/playlist/" + id,
		},
	})
}
