package rest

import (
	"encoding/json"
	"net/http"

	"github.com/seotrue/Feelist/internal/core/domain"
)

type analyzeRequest struct {
	Prompt string `json:"prompt"`
}

type analyzeResponse struct {
	Analysis domain.MoodDescriptor `json:"analysis"`
}

// analyze handles POST /api/analyze.
func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	d, err := h.svc.AnalyzeMood(r.Context(), req.Prompt)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{Analysis: d})
}
