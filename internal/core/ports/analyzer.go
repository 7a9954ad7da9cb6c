package ports

import (
	"context"

	"github.com/seotrue/Feelist/internal/core/domain"
)

// MoodAnalyzer turns free-form user text into a validated MoodDescriptor.
// Implementations classify upstream quota failures as domain.RateLimitError
// so callers can surface them distinctly.
type MoodAnalyzer interface {
	AnalyzeMood(ctx context.Context, prompt string) (domain.MoodDescriptor, error)
}
