package domain

// Track is a single playable unit from the external catalog. Immutable once
// mapped from the wire representation.
type Track struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists"`
	AlbumName   string   `json:"album_name"`
	AlbumImages []Image  `json:"album_images"`
	DurationMs  int      `json:"duration_ms"`
	PreviewURL  string   `json:"preview_url,omitempty"`
	ExternalURL string   `json:"external_url"`
	URI         string   `json:"uri"`
}

// Image is album art at one resolution.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// UserProfile is the authenticated user's public identity.
type UserProfile struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Email       string  `json:"email,omitempty"`
	Images      []Image `json:"images,omitempty"`
}

// AudioFeatures are per-track musical characteristics used by the ranked
// acquisition path.
type AudioFeatures struct {
	ID           string  `json:"id"`
	Energy       float64 `json:"energy"`
	Valence      float64 `json:"valence"`
	Tempo        float64 `json:"tempo"`
	Danceability float64 `json:"danceability"`
}

// TrackURIs extracts the service URIs of tracks in order.
func TrackURIs(tracks []Track) []string {
	uris := make([]string, 0, len(tracks))
	for _, t := range tracks {
		uris = append(uris, t.URI)
	}
	return uris
}
