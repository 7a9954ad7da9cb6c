package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/seotrue/Feelist/internal/core/domain"
)

// errorBody is the envelope every failure response carries. Machine-readable
// code, human-readable message, and the request id for log correlation.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
	Details   string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error onto an HTTP status and the error envelope.
// Production responses carry only the public message; dev mode adds the full
// error string as details.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := mapError(err)

	var rateErr *domain.RateLimitError
	if errors.As(err, &rateErr) && rateErr.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(rateErr.RetryAfter))
	}

	requestID := middleware.GetReqID(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}

	event := h.log.Warn()
	if status >= http.StatusInternalServerError {
		event = h.log.Error()
	}
	event.
		Err(err).
		Int("status", status).
		Str("code", code).
		Str("request_id", requestID).
		Str("path", r.URL.Path).
		Msg("request failed")

	body := errorBody{Error: errorDetail{
		Code:      code,
		Message:   message,
		RequestID: requestID,
	}}
	if h.devMode {
		body.Error.Details = err.Error()
	}
	writeJSON(w, status, body)
}

// mapError folds the error taxonomy onto HTTP statuses and public codes.
func mapError(err error) (status int, code, message string) {
	var (
		validationErr  *domain.ValidationError
		authErr        *domain.AuthError
		notFoundErr    *domain.NotFoundError
		rateErr        *domain.RateLimitError
		translationErr *domain.TranslationError
		transportErr   *domain.TransportError
		upstreamErr    *domain.UpstreamError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, "INVALID_REQUEST", validationErr.Error()
	case errors.As(err, &authErr):
		return http.StatusUnauthorized, "UNAUTHORIZED", "authentication required"
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, "NOT_FOUND", notFoundErr.Error()
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests, "RATE_LIMITED", "upstream rate limit reached, try again later"
	case errors.As(err, &translationErr):
		return http.StatusInternalServerError, "ANALYSIS_FAILED", "could not analyze the mood text"
	case errors.As(err, &transportErr):
		return http.StatusBadGateway, "UPSTREAM_UNREACHABLE", "an upstream service is unreachable"
	case errors.As(err, &upstreamErr):
		return http.StatusInternalServerError, "UPSTREAM_ERROR", "an upstream service failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}
}

// requestLogger logs one line per request with zerolog.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
