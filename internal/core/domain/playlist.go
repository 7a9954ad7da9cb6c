package domain

import (
	"errors"
	"time"
)

// Playlist is a named, ordered collection of tracks tied to one descriptor.
// Name and description are derived from the descriptor at creation and are
// not independently mutable afterwards.
type Playlist struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Tracks      []Track        `json:"tracks"`
	Analysis    MoodDescriptor `json:"analysis"`
	CreatedAt   time.Time      `json:"createdAt"`
	ExternalURL string         `json:"spotifyUrl,omitempty"`
}

// NewPlaylist builds a playlist from its external identity and the
// descriptor it was created for. A playlist only exists once at least one
// track was found.
func NewPlaylist(id string, d MoodDescriptor, tracks []Track, externalURL string) (Playlist, error) {
	if id == "" {
		return Playlist{}, errors.New("domain: playlist id is required")
	}
	if len(tracks) == 0 {
		return Playlist{}, &NotFoundError{Resource: "tracks"}
	}
	return Playlist{
		ID:          id,
		Name:        d.PlaylistName,
		Description: d.Description,
		Tracks:      tracks,
		Analysis:    d,
		CreatedAt:   time.Now().UTC(),
		ExternalURL: externalURL,
	}, nil
}
