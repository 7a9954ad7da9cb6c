package ports

import (
	"context"

	"github.com/seotrue/Feelist/internal/core/domain"
)

// TrackSource converts a descriptor into an ordered track list. The active
// implementation is selected by configuration because the upstream
// recommendation endpoint may be administratively unavailable.
//
// Implementations return domain.NotFoundError when nothing matches; an empty
// slice is never returned silently.
type TrackSource interface {
	AcquireTracks(ctx context.Context, accessToken string, d domain.MoodDescriptor) ([]domain.Track, error)
}
