package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seotrue/Feelist/internal/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SPOTIFY_CLIENT_ID", "client-1")
	t.Setenv("GEMINI_API_KEY", "key-1")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "KR", cfg.Market)
	assert.Equal(t, config.StrategySearch, cfg.Strategy)
	assert.Equal(t, 10, cfg.SearchLimit)
	assert.Equal(t, "feelist.db", cfg.SessionDBPath)
	assert.False(t, cfg.DevMode)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "")
	t.Setenv("GEMINI_API_KEY", "key-1")
	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("SPOTIFY_CLIENT_ID", "client-1")
	t.Setenv("GEMINI_API_KEY", "")
	_, err = config.Load()
	require.Error(t, err)
}

func TestLoad_StrategyValidation(t *testing.T) {
	setRequired(t)

	for _, valid := range []string{"search", "recommendations", "ranked"} {
		t.Setenv("TRACK_STRATEGY", valid)
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, valid, cfg.Strategy)
	}

	t.Setenv("TRACK_STRATEGY", "vibes")
	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_SearchLimit(t *testing.T) {
	setRequired(t)

	t.Setenv("SEARCH_LIMIT", "5")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.SearchLimit)

	t.Setenv("SEARCH_LIMIT", "zero")
	_, err = config.Load()
	require.Error(t, err)
}
