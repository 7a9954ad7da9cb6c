// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Strategy names accepted by TRACK_STRATEGY.
const (
	StrategySearch          = "search"
	StrategyRecommendations = "recommendations"
	StrategyRanked          = "ranked"
)

// Config is the full runtime configuration. Missing optional values get
// defaults; missing required values fail Load.
type Config struct {
	Addr string

	SpotifyClientID string
	RedirectURI     string
	SpotifyAPIURL   string
	Market          string
	SearchLimit     int
	Strategy        string

	GeminiAPIKey string
	GeminiModel  string

	SessionDBPath string

	DevMode bool
}

// Load reads configuration from environment variables, crashing early on
// missing required values.
func Load() (Config, error) {
	cfg := Config{
		Addr:            getenv("ADDR", ":8080"),
		SpotifyClientID: os.Getenv("SPOTIFY_CLIENT_ID"),
		RedirectURI:     getenv("REDIRECT_URI", "http://localhost:5173/callback"),
		SpotifyAPIURL:   os.Getenv("SPOTIFY_API_URL"),
		Market:          getenv("SPOTIFY_MARKET", "KR"),
		Strategy:        getenv("TRACK_STRATEGY", StrategySearch),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     os.Getenv("GEMINI_MODEL"),
		SessionDBPath:   getenv("SESSION_DB_PATH", "feelist.db"),
		DevMode:         boolenv("DEV_MODE"),
	}

	if cfg.SpotifyClientID == "" {
		return Config{}, fmt.Errorf("config: SPOTIFY_CLIENT_ID is required")
	}
	if cfg.GeminiAPIKey == "" {
		return Config{}, fmt.Errorf("config: GEMINI_API_KEY is required")
	}

	switch cfg.Strategy {
	case StrategySearch, StrategyRecommendations, StrategyRanked:
	default:
		return Config{}, fmt.Errorf("config: unknown TRACK_STRATEGY %q", cfg.Strategy)
	}

	limit := getenv("SEARCH_LIMIT", "10")
	n, err := strconv.Atoi(limit)
	if err != nil || n <= 0 {
		return Config{}, fmt.Errorf("config: SEARCH_LIMIT must be a positive integer, got %q", limit)
	}
	cfg.SearchLimit = n

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolenv(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
