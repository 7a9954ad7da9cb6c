package spotify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seotrue/Feelist/internal/adapters/spotify"
	"github.com/seotrue/Feelist/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *spotify.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return spotify.NewClient(ts.Client(), ts.URL, "KR", zerolog.Nop())
}

func trackJSON(id, name, artist string) string {
	return `{
		"id": "` + id + `",
		"name": "` + name + `",
		"artists": [{"id": "artist-` + id + `", "name": "` + artist + `"}],
		"album": {"id": "album-` + id + `", "name": "Album ` + id + `", "images": [{"url": "https://img/` + id + `", "height": 300, "width": 300}]},
		"duration_ms": 201000,
		"preview_url": null,
		"external_urls": {"spotify": "https://open.spotify.com/track/` + id + `"},
		"uri": "spotify:track:` + id + `"
	}`
}

func calmDescriptor() domain.MoodDescriptor {
	return domain.MoodDescriptor{
		Mood:               "calm",
		Genres:             []string{"lo-fi", "jazz"},
		TargetEnergy:       0.3,
		TargetValence:      0.6,
		TargetTempo:        85,
		TargetDanceability: 0.4,
		Keywords:           []string{"rain", "cafe", "coding"},
		PlaylistName:       "Rainy Cafe Coding",
		Description:        "비 오는 날을 위한 플레이리스트",
	}
}

func TestSearchTracks(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "lo-fi jazz calm rain cafe music", r.URL.Query().Get("q"))
		assert.Equal(t, "track", r.URL.Query().Get("type"))
		assert.Equal(t, "KR", r.URL.Query().Get("market"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"tracks":{"items":[` + trackJSON("t1", "Rainy Keys", "Mellow Trio") + `]}}`))
	}))

	tracks, err := client.SearchTracks(context.Background(), "token-1", calmDescriptor(), 0)
	require.NoError(t, err)
	require.Len(t, tracks, 1)

	assert.Equal(t, "t1", tracks[0].ID)
	assert.Equal(t, "Rainy Keys", tracks[0].Name)
	assert.Equal(t, []string{"Mellow Trio"}, tracks[0].Artists)
	assert.Equal(t, "Album t1", tracks[0].AlbumName)
	assert.Empty(t, tracks[0].PreviewURL)
	assert.Equal(t, "spotify:track:t1", tracks[0].URI)
}

func TestSearchTracks_LimitCapped(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"tracks":{"items":[]}}`))
	}))

	_, err := client.SearchTracks(context.Background(), "token-1", calmDescriptor(), 50)
	require.NoError(t, err)
}

func TestRecommendTracks(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recommendations", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "lo-fi,jazz", q.Get("seed_genres"))
		assert.Equal(t, "0.30", q.Get("target_energy"))
		assert.Equal(t, "0.60", q.Get("target_valence"))
		assert.Equal(t, "85", q.Get("target_tempo"))
		assert.Equal(t, "0.40", q.Get("target_danceability"))
		_, _ = w.Write([]byte(`{"tracks":[` + trackJSON("r1", "Low Light", "Night Owls") + `]}`))
	}))

	tracks, err := client.RecommendTracks(context.Background(), "token-1", calmDescriptor(), 10)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "r1", tracks[0].ID)
}

func TestDo_MissingTokenRejectedBeforeNetwork(t *testing.T) {
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.CurrentUser(context.Background(), "")

	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.False(t, called)
}

func TestDo_NormalizesFailures(t *testing.T) {
	t.Run("401 becomes AuthError", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"status":401,"message":"The access token expired"}}`))
		}))

		_, err := client.CurrentUser(context.Background(), "stale-token")

		var authErr *domain.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "The access token expired", authErr.Reason)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("429 becomes RateLimitError with retry hint", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "12")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"status":429,"message":"rate limit exceeded"}}`))
		}))

		_, err := client.SearchTracks(context.Background(), "token-1", calmDescriptor(), 10)

		var rateErr *domain.RateLimitError
		require.ErrorAs(t, err, &rateErr)
		assert.Equal(t, "spotify", rateErr.Service)
		assert.Equal(t, 12, rateErr.RetryAfter)
	})

	t.Run("other statuses become UpstreamError", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"status":503,"message":"service unavailable"}}`))
		}))

		_, err := client.CurrentUser(context.Background(), "token-1")

		var upstream *domain.UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, http.StatusServiceUnavailable, upstream.Status)
	})
}

func TestCurrentUser(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"user-1","display_name":"Seo","email":"seo@example.com","images":[]}`))
	}))

	user, err := client.CurrentUser(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Seo", user.DisplayName)
}

func TestPublishPlaylist(t *testing.T) {
	var gotCreate map[string]any
	var gotURIs []string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /me/playlists", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotCreate))
		_, _ = w.Write([]byte(`{"id":"pl-1","name":"Rainy Cafe Coding","description":"desc","external_urls":{"spotify":"https://open.spotify.com/playlist/pl-1"}}`))
	})
	mux.HandleFunc("POST /playlists/pl-1/items", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			URIs []string `json:"uris"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotURIs = body.URIs
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"snapshot_id":"snap"}`))
	})
	mux.HandleFunc("GET /playlists/pl-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"id": "pl-1",
			"name": "Rainy Cafe Coding",
			"description": "desc",
			"external_urls": {"spotify": "https://open.spotify.com/playlist/pl-1"},
			"items": {"total": 1, "items": [{"item": ` + trackJSON("t1", "Rainy Keys", "Mellow Trio") + `}]}
		}`))
	})

	client := newTestClient(t, mux)

	playlist, err := client.PublishPlaylist(context.Background(), "token-1", "Rainy Cafe Coding", "desc", []string{"spotify:track:t1"})
	require.NoError(t, err)

	assert.Equal(t, "Rainy Cafe Coding", gotCreate["name"])
	assert.Equal(t, false, gotCreate["public"])
	assert.Equal(t, []string{"spotify:track:t1"}, gotURIs)

	assert.Equal(t, "pl-1", playlist.ID)
	assert.Equal(t, "https://open.spotify.com/playlist/pl-1", playlist.ExternalURL)
	require.Len(t, playlist.Tracks, 1)
	assert.Equal(t, "Rainy Keys", playlist.Tracks[0].Name)
}

func TestPublishPlaylist_CleansUpOnAppendFailure(t *testing.T) {
	unfollowed := false

	mux := http.NewServeMux()
	mux.HandleFunc("POST /me/playlists", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"pl-2","name":"n","description":"d"}`))
	})
	mux.HandleFunc("POST /playlists/pl-2/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":{"status":502,"message":"append failed"}}`))
	})
	mux.HandleFunc("DELETE /playlists/pl-2/followers", func(w http.ResponseWriter, r *http.Request) {
		unfollowed = true
		w.WriteHeader(http.StatusOK)
	})

	client := newTestClient(t, mux)

	_, err := client.PublishPlaylist(context.Background(), "token-1", "n", "d", []string{"spotify:track:x"})

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream, "the append failure must win over the cleanup outcome")
	assert.Equal(t, http.StatusBadGateway, upstream.Status)
	assert.True(t, unfollowed, "a failed publish must not leave an empty playlist behind")
}

func TestPublishPlaylist_RejectsEmptyTrackList(t *testing.T) {
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.PublishPlaylist(context.Background(), "token-1", "n", "d", nil)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, called)
}

func TestGetPlaylist_LegacyTracksShape(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"id": "pl-3",
			"name": "Old Shape",
			"tracks": {"total": 1, "items": [{"track": ` + trackJSON("t9", "Vintage", "Old Band") + `}]}
		}`))
	}))

	playlist, err := client.GetPlaylist(context.Background(), "token-1", "pl-3")
	require.NoError(t, err)
	require.Len(t, playlist.Tracks, 1)
	assert.Equal(t, "Vintage", playlist.Tracks[0].Name)
}
