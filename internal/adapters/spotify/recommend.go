package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/seotrue/Feelist/internal/core/domain"
)

// maxRecommendLimit caps recommendation requests; the endpoint tolerates
// larger pages than search does.
const maxRecommendLimit = 20

// RecommendTracks asks the recommendations endpoint for tracks matching the
// descriptor's genre seeds and audio-feature targets. Results keep the
// upstream ranking.
func (c *Client) RecommendTracks(ctx context.Context, accessToken string, d domain.MoodDescriptor, limit int) ([]domain.Track, error) {
	if limit <= 0 || limit > maxRecommendLimit {
		limit = maxRecommendLimit
	}

	seeds := d.Genres
	if len(seeds) > domain.MaxGenres {
		seeds = seeds[:domain.MaxGenres]
	}

	params := url.Values{}
	params.Set("seed_genres", strings.Join(seeds, ","))
	params.Set("target_energy", formatTarget(d.TargetEnergy))
	params.Set("target_valence", formatTarget(d.TargetValence))
	params.Set("target_tempo", fmt.Sprintf("%g", d.TargetTempo))
	params.Set("target_danceability", formatTarget(d.TargetDanceability))
	params.Set("market", c.market)
	params.Set("limit", fmt.Sprintf("%d", limit))

	var resp wireRecommendationsResponse
	if err := c.do(ctx, "GET", "/recommendations?"+params.Encode(), accessToken, nil, &resp); err != nil {
		return nil, err
	}

	tracks := mapTracks(resp.Tracks)
	c.log.Debug().Strs("seeds", seeds).Int("results", len(tracks)).Msg("spotify recommendations")
	return tracks, nil
}

func formatTarget(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
