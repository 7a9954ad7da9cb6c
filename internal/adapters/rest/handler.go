// Package rest is the inbound HTTP adapter: routing, request decoding,
// bearer-token handling and the mapping of domain errors onto statuses and
// the error envelope.
package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/seotrue/Feelist/internal/auth"
	"github.com/seotrue/Feelist/internal/core/services"
)

// Handler is the HTTP interface of the application.
type Handler struct {
	svc      *services.Orchestrator
	flow     *auth.Flow
	sessions auth.SessionStore
	router   chi.Router
	log      zerolog.Logger
	devMode  bool
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Orchestrator, flow *auth.Flow, sessions auth.SessionStore, log zerolog.Logger, devMode bool) *Handler {
	h := &Handler{
		svc:      svc,
		flow:     flow,
		sessions: sessions,
		router:   chi.NewRouter(),
		log:      log,
		devMode:  devMode,
	}
	h.routes()
	return h
}

// ServeHTTP satisfies http.Handler by delegating to the internal router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.Use(middleware.RequestID)
	h.router.Use(middleware.RealIP)
	h.router.Use(requestLogger(h.log))
	h.router.Use(middleware.Recoverer)

	h.router.Get("/health", h.healthCheck)

	h.router.Route("/api", func(r chi.Router) {
		r.Post("/analyze", h.analyze)

		r.Get("/auth/login", h.loginURL)
		r.Post("/auth/spotify", h.exchangeCode)
		r.Post("/auth/refresh", h.refreshToken)
		r.Post("/auth/logout", h.logout)

		r.Post("/playlist", h.createPlaylist)
		r.Get("/playlist/{id}", h.sharePlaylist)
	})
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// bearerToken extracts the access token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
