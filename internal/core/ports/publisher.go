package ports

import (
	"context"

	"github.com/seotrue/Feelist/internal/core/domain"
)

// PlaylistPublisher creates state on the external music service. Playlist
// creation is a two-phase operation (create, then append tracks) with a
// best-effort cleanup of the empty playlist when the second phase fails.
type PlaylistPublisher interface {
	// CurrentUser resolves the profile behind an access token.
	CurrentUser(ctx context.Context, accessToken string) (domain.UserProfile, error)

	// PublishPlaylist creates a playlist owned by the current user, appends
	// all track URIs in one batch, and re-fetches the playlist so the
	// returned representation reflects the just-added tracks.
	PublishPlaylist(ctx context.Context, accessToken, name, description string, trackURIs []string) (domain.Playlist, error)
}
