// Package services holds the application core: use cases composed from the
// ports, with no knowledge of HTTP or any concrete upstream.
package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/seotrue/Feelist/internal/core/domain"
	"github.com/seotrue/Feelist/internal/core/ports"
)

// Orchestrator coordinates the full flow: mood analysis, track acquisition
// and playlist publishing.
type Orchestrator struct {
	analyzer  ports.MoodAnalyzer
	source    ports.TrackSource
	publisher ports.PlaylistPublisher
	log       zerolog.Logger
}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator(analyzer ports.MoodAnalyzer, source ports.TrackSource, publisher ports.PlaylistPublisher, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		analyzer:  analyzer,
		source:    source,
		publisher: publisher,
		log:       log,
	}
}

// AnalyzeMood turns free-form user text into a normalized mood descriptor.
func (o *Orchestrator) AnalyzeMood(ctx context.Context, prompt string) (domain.MoodDescriptor, error) {
	return o.analyzer.AnalyzeMood(ctx, prompt)
}

// Profile resolves the profile behind an access token.
func (o *Orchestrator) Profile(ctx context.Context, accessToken string) (domain.UserProfile, error) {
	if accessToken == "" {
		return domain.UserProfile{}, &domain.AuthError{Reason: "missing access token"}
	}
	return o.publisher.CurrentUser(ctx, accessToken)
}

// CreatePlaylist runs the acquire-and-assemble flow for one descriptor:
// resolve the token's owner, acquire tracks with the configured strategy,
// publish the playlist and return its final state. An empty token fails
// before any network call; zero acquired tracks fail as not-found rather
// than producing an empty playlist.
func (o *Orchestrator) CreatePlaylist(ctx context.Context, accessToken string, d domain.MoodDescriptor) (domain.Playlist, error) {
	if accessToken == "" {
		return domain.Playlist{}, &domain.AuthError{Reason: "missing access token"}
	}

	d = d.Normalized()

	user, err := o.publisher.CurrentUser(ctx, accessToken)
	if err != nil {
		return domain.Playlist{}, err
	}

	tracks, err := o.source.AcquireTracks(ctx, accessToken, d)
	if err != nil {
		return domain.Playlist{}, err
	}
	if len(tracks) == 0 {
		return domain.Playlist{}, &domain.NotFoundError{Resource: "tracks"}
	}

	published, err := o.publisher.PublishPlaylist(ctx, accessToken, d.PlaylistName, d.Description, domain.TrackURIs(tracks))
	if err != nil {
		return domain.Playlist{}, err
	}

	// Prefer the re-fetched track list; fall back to what we acquired when
	// the publisher could not return one.
	finalTracks := published.Tracks
	if len(finalTracks) == 0 {
		finalTracks = tracks
	}

	playlist, err := domain.NewPlaylist(published.ID, d, finalTracks, published.ExternalURL)
	if err != nil {
		return domain.Playlist{}, err
	}

	o.log.Info().
		Str("user_id", user.ID).
		Str("playlist_id", playlist.ID).
		Int("tracks", len(playlist.Tracks)).
		Msg("playlist created")

	return playlist, nil
}
