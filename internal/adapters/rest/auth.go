package rest

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/seotrue/Feelist/internal/auth"
	"github.com/seotrue/Feelist/internal/core/domain"
)

type loginURLResponse struct {
	URL          string `json:"url"`
	CodeVerifier string `json:"codeVerifier"`
}

// loginURL handles GET /api/auth/login. The verifier goes back to the
// caller and is never stored server-side; it returns with the code on
// exchange.
func (h *Handler) loginURL(w http.ResponseWriter, r *http.Request) {
	pair := auth.NewPKCEPair()
	url := h.flow.AuthCodeURL(uuid.NewString(), pair)
	writeJSON(w, http.StatusOK, loginURLResponse{URL: url, CodeVerifier: pair.Verifier})
}

type exchangeRequest struct {
	Code         string `json:"code"`
	CodeVerifier string `json:"codeVerifier"`
}

// exchangeCode handles POST /api/auth/spotify: server-side PKCE exchange
// followed by a profile fetch, resulting in a persisted session.
func (h *Handler) exchangeCode(w http.ResponseWriter, r *http.Request) {
	var req exchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	session, err := h.flow.Exchange(r.Context(), req.Code, req.CodeVerifier)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.svc.Profile(r.Context(), session.AccessToken)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	session.User = user

	if err := h.sessions.Save(r.Context(), session); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// refreshToken handles POST /api/auth/refresh: the refresh-token grant,
// carrying forward the stored profile when the token belongs to a known
// session.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	if req.RefreshToken == "" {
		h.writeError(w, r, &domain.ValidationError{Field: "refreshToken", Reason: "is required"})
		return
	}

	refreshed, err := h.flow.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if existing, err := h.sessions.GetByRefreshToken(r.Context(), req.RefreshToken); err == nil && existing != nil {
		refreshed.User = existing.User
		if err := h.sessions.Save(r.Context(), refreshed); err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, refreshed)
}

// logout handles POST /api/auth/logout. Idempotent: logging out an unknown
// token still succeeds with a cleared session.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token != "" {
		if session, err := h.sessions.GetByAccessToken(r.Context(), token); err == nil && session != nil {
			if err := h.sessions.Delete(r.Context(), session.User.ID); err != nil {
				h.writeError(w, r, err)
				return
			}
		}
	}

	var cleared auth.Session
	cleared.Clear()
	writeJSON(w, http.StatusOK, &cleared)
}
