package spotify

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/seotrue/Feelist/internal/core/domain"
	"github.com/seotrue/Feelist/internal/core/ports"
)

// SearchStrategy acquires tracks with a plain catalog search built from the
// descriptor. This is the default strategy.
type SearchStrategy struct {
	client *Client
	limit  int
}

// RecommendationStrategy acquires tracks from the recommendations endpoint
// using genre seeds and audio-feature targets.
type RecommendationStrategy struct {
	client *Client
	limit  int
}

// RankedSearchStrategy searches the catalog, then reorders the results by
// how closely their audio features match the descriptor's targets. When the
// features endpoint is unavailable it degrades to the plain search order.
type RankedSearchStrategy struct {
	client *Client
	limit  int
}

var (
	_ ports.TrackSource = (*SearchStrategy)(nil)
	_ ports.TrackSource = (*RecommendationStrategy)(nil)
	_ ports.TrackSource = (*RankedSearchStrategy)(nil)
)

func NewSearchStrategy(client *Client, limit int) *SearchStrategy {
	return &SearchStrategy{client: client, limit: limit}
}

func NewRecommendationStrategy(client *Client, limit int) *RecommendationStrategy {
	return &RecommendationStrategy{client: client, limit: limit}
}

func NewRankedSearchStrategy(client *Client, limit int) *RankedSearchStrategy {
	return &RankedSearchStrategy{client: client, limit: limit}
}

func (s *SearchStrategy) AcquireTracks(ctx context.Context, accessToken string, d domain.MoodDescriptor) ([]domain.Track, error) {
	tracks, err := s.client.SearchTracks(ctx, accessToken, d, s.limit)
	if err != nil {
		return nil, err
	}
	return requireTracks(tracks)
}

func (s *RecommendationStrategy) AcquireTracks(ctx context.Context, accessToken string, d domain.MoodDescriptor) ([]domain.Track, error) {
	tracks, err := s.client.RecommendTracks(ctx, accessToken, d, s.limit)
	if err != nil {
		return nil, err
	}
	return requireTracks(tracks)
}

func (s *RankedSearchStrategy) AcquireTracks(ctx context.Context, accessToken string, d domain.MoodDescriptor) ([]domain.Track, error) {
	tracks, err := s.client.SearchTracks(ctx, accessToken, d, s.limit)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, &domain.NotFoundError{Resource: "tracks"}
	}

	ids := make([]string, 0, len(tracks))
	for _, t := range tracks {
		ids = append(ids, t.ID)
	}

	features, err := s.client.AudioFeatures(ctx, accessToken, ids)
	if err != nil {
		if featuresUnavailable(err) {
			s.client.log.Warn().Err(err).Msg("audio features unavailable, keeping search order")
			return tracks, nil
		}
		return nil, err
	}

	return rankBySimilarity(tracks, features, d), nil
}

// featuresUnavailable reports whether the failure means the audio-features
// endpoint is not usable for this app (Spotify returns 403 for development
// apps and 404 for deprecated access), rather than a caller problem.
func featuresUnavailable(err error) bool {
	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		return false
	}
	return upstream.Status == http.StatusForbidden || upstream.Status == http.StatusNotFound
}

// rankBySimilarity sorts tracks by their similarity score, best first.
// Tracks without a feature entry keep a neutral score and their relative
// search order, the sort being stable.
func rankBySimilarity(tracks []domain.Track, features []domain.AudioFeatures, d domain.MoodDescriptor) []domain.Track {
	scores := make(map[string]float64, len(features))
	for _, f := range features {
		scores[f.ID] = similarityScore(f, d)
	}

	ranked := make([]domain.Track, len(tracks))
	copy(ranked, tracks)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i].ID] > scores[ranked[j].ID]
	})
	return ranked
}

func requireTracks(tracks []domain.Track) ([]domain.Track, error) {
	if len(tracks) == 0 {
		return nil, &domain.NotFoundError{Resource: "tracks"}
	}
	return tracks, nil
}
