package spotify

// Wire types mirror the Spotify API responses. They never leave this
// package; mapper.go converts them to domain types.

type wireErrorEnvelope struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

type wireImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type wireArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireTrack struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Artists []wireArtist `json:"artists"`
	Album   struct {
		ID     string      `json:"id"`
		Name   string      `json:"name"`
		Images []wireImage `json:"images"`
	} `json:"album"`
	DurationMs   int     `json:"duration_ms"`
	PreviewURL   *string `json:"preview_url"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	URI string `json:"uri"`
}

type wireSearchResponse struct {
	Tracks struct {
		Items []wireTrack `json:"items"`
	} `json:"tracks"`
}

type wireRecommendationsResponse struct {
	Tracks []wireTrack `json:"tracks"`
}

type wireUser struct {
	ID          string      `json:"id"`
	DisplayName string      `json:"display_name"`
	Email       string      `json:"email"`
	Images      []wireImage `json:"images"`
}

// wirePlaylist carries both the legacy "tracks" shape and the "items"
// shape that replaced it in the February 2026 API revision; whichever is
// populated wins during mapping.
type wirePlaylist struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	Images []wireImage `json:"images"`
	Items  *struct {
		Total int `json:"total"`
		Items []struct {
			Item wireTrack `json:"item"`
		} `json:"items"`
	} `json:"items,omitempty"`
	Tracks *struct {
		Total int `json:"total"`
		Items []struct {
			Track wireTrack `json:"track"`
		} `json:"items"`
	} `json:"tracks,omitempty"`
	Owner struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	} `json:"owner"`
}

type wireAudioFeatures struct {
	ID           string  `json:"id"`
	Energy       float64 `json:"energy"`
	Valence      float64 `json:"valence"`
	Tempo        float64 `json:"tempo"`
	Danceability float64 `json:"danceability"`
}

type wireAudioFeaturesResponse struct {
	AudioFeatures []*wireAudioFeatures `json:"audio_features"`
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

type addItemsRequest struct {
	URIs []string `json:"uris"`
}
