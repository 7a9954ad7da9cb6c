package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/seotrue/Feelist/internal/core/domain"
)

// maxSearchLimit caps search requests; development-mode Spotify apps reject
// larger pages.
const maxSearchLimit = 10

// BuildSearchQuery composes a free-text catalog query from a descriptor:
// up to three genres, the mood word, up to two keywords, and a trailing
// "music" to bias results toward songs over podcasts.
func BuildSearchQuery(d domain.MoodDescriptor) string {
	terms := make([]string, 0, 7)

	genres := d.Genres
	if len(genres) > 3 {
		genres = genres[:3]
	}
	terms = append(terms, genres...)

	if d.Mood != "" {
		terms = append(terms, d.Mood)
	}

	keywords := d.Keywords
	if len(keywords) > 2 {
		keywords = keywords[:2]
	}
	terms = append(terms, keywords...)

	terms = append(terms, "music")
	return strings.Join(terms, " ")
}

// SearchTracks runs a track search for the descriptor in the client's market.
func (c *Client) SearchTracks(ctx context.Context, accessToken string, d domain.MoodDescriptor, limit int) ([]domain.Track, error) {
	if limit <= 0 || limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	query := BuildSearchQuery(d)
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("market", c.market)
	params.Set("limit", fmt.Sprintf("%d", limit))

	var resp wireSearchResponse
	if err := c.do(ctx, "GET", "/search?"+params.Encode(), accessToken, nil, &resp); err != nil {
		return nil, err
	}

	tracks := mapTracks(resp.Tracks.Items)
	c.log.Debug().Str("query", query).Int("results", len(tracks)).Msg("spotify search")
	return tracks, nil
}
