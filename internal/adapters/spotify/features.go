package spotify

import (
	"context"
	"math"
	"net/url"
	"strings"

	"github.com/seotrue/Feelist/internal/core/domain"
)

// Weighting of each audio feature when scoring a track against the
// descriptor's targets. Tempo is normalized to [0,1] over the supported
// range before it is compared.
const (
	energyWeight       = 0.3
	valenceWeight      = 0.3
	tempoWeight        = 0.2
	danceabilityWeight = 0.2
)

// AudioFeatures fetches features for up to 100 track ids in one batch call.
// Tracks the API has no analysis for come back as null entries and are
// omitted from the result.
func (c *Client) AudioFeatures(ctx context.Context, accessToken string, trackIDs []string) ([]domain.AudioFeatures, error) {
	if len(trackIDs) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("ids", strings.Join(trackIDs, ","))

	var resp wireAudioFeaturesResponse
	if err := c.do(ctx, "GET", "/audio-features?"+params.Encode(), accessToken, nil, &resp); err != nil {
		return nil, err
	}

	features := make([]domain.AudioFeatures, 0, len(resp.AudioFeatures))
	for _, w := range resp.AudioFeatures {
		if w == nil || w.ID == "" {
			continue
		}
		features = append(features, domain.AudioFeatures{
			ID:           w.ID,
			Energy:       w.Energy,
			Valence:      w.Valence,
			Tempo:        w.Tempo,
			Danceability: w.Danceability,
		})
	}
	return features, nil
}

// similarityScore measures how close a track's audio features sit to the
// descriptor's targets, in [0,1] with 1 meaning an exact match.
func similarityScore(f domain.AudioFeatures, d domain.MoodDescriptor) float64 {
	distance := energyWeight*math.Abs(f.Energy-d.TargetEnergy) +
		valenceWeight*math.Abs(f.Valence-d.TargetValence) +
		tempoWeight*math.Abs(normalizeTempo(f.Tempo)-normalizeTempo(d.TargetTempo)) +
		danceabilityWeight*math.Abs(f.Danceability-d.TargetDanceability)
	return 1 - distance
}

// normalizeTempo maps a BPM value onto [0,1] over the supported tempo range
// so it can be weighed against the other unit-interval features.
func normalizeTempo(bpm float64) float64 {
	span := float64(domain.MaxTempo - domain.MinTempo)
	normalized := (bpm - float64(domain.MinTempo)) / span
	if normalized < 0 {
		return 0
	}
	if normalized > 1 {
		return 1
	}
	return normalized
}
