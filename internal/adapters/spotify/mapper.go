package spotify

import (
	"github.com/seotrue/Feelist/internal/core/domain"
)

func mapTrack(w wireTrack) domain.Track {
	artists := make([]string, 0, len(w.Artists))
	for _, a := range w.Artists {
		artists = append(artists, a.Name)
	}

	previewURL := ""
	if w.PreviewURL != nil {
		previewURL = *w.PreviewURL
	}

	return domain.Track{
		ID:          w.ID,
		Name:        w.Name,
		Artists:     artists,
		AlbumName:   w.Album.Name,
		AlbumImages: mapImages(w.Album.Images),
		DurationMs:  w.DurationMs,
		PreviewURL:  previewURL,
		ExternalURL: w.ExternalURLs.Spotify,
		URI:         w.URI,
	}
}

func mapTracks(wires []wireTrack) []domain.Track {
	tracks := make([]domain.Track, 0, len(wires))
	for _, w := range wires {
		if w.ID == "" {
			continue
		}
		tracks = append(tracks, mapTrack(w))
	}
	return tracks
}

func mapImages(wires []wireImage) []domain.Image {
	images := make([]domain.Image, 0, len(wires))
	for _, w := range wires {
		images = append(images, domain.Image{URL: w.URL, Height: w.Height, Width: w.Width})
	}
	return images
}

func mapUser(w wireUser) domain.UserProfile {
	return domain.UserProfile{
		ID:          w.ID,
		DisplayName: w.DisplayName,
		Email:       w.Email,
		Images:      mapImages(w.Images),
	}
}

// playlistTracks reads whichever track wrapper the API populated. The
// February 2026 revision renamed "tracks" to "items"; responses in the wild
// still come in both shapes.
func playlistTracks(w wirePlaylist) []domain.Track {
	if w.Items != nil {
		wires := make([]wireTrack, 0, len(w.Items.Items))
		for _, entry := range w.Items.Items {
			wires = append(wires, entry.Item)
		}
		return mapTracks(wires)
	}
	if w.Tracks != nil {
		wires := make([]wireTrack, 0, len(w.Tracks.Items))
		for _, entry := range w.Tracks.Items {
			wires = append(wires, entry.Track)
		}
		return mapTracks(wires)
	}
	return nil
}

func mapPlaylist(w wirePlaylist) domain.Playlist {
	return domain.Playlist{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Tracks:      playlistTracks(w),
		ExternalURL: w.ExternalURLs.Spotify,
	}
}
