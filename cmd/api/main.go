package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/seotrue/Feelist/internal/adapters/gemini"
	"github.com/seotrue/Feelist/internal/adapters/rest"
	"github.com/seotrue/Feelist/internal/adapters/spotify"
	"github.com/seotrue/Feelist/internal/adapters/sqlite"
	"github.com/seotrue/Feelist/internal/auth"
	"github.com/seotrue/Feelist/internal/config"
	"github.com/seotrue/Feelist/internal/core/ports"
	"github.com/seotrue/Feelist/internal/core/services"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}
	if cfg.DevMode {
		log = log.Level(zerolog.DebugLevel)
	}

	// Driven adapters.
	sessions, err := sqlite.NewSessionStore(cfg.SessionDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}
	defer sessions.Close()

	spotifyClient := spotify.NewClient(nil, cfg.SpotifyAPIURL, cfg.Market, log)

	var source ports.TrackSource
	switch cfg.Strategy {
	case config.StrategyRecommendations:
		source = spotify.NewRecommendationStrategy(spotifyClient, cfg.SearchLimit)
	case config.StrategyRanked:
		source = spotify.NewRankedSearchStrategy(spotifyClient, cfg.SearchLimit)
	default:
		source = spotify.NewSearchStrategy(spotifyClient, cfg.SearchLimit)
	}

	analyzer := gemini.NewClient("", cfg.GeminiAPIKey, cfg.GeminiModel, log)

	flow := auth.NewFlow(auth.FlowConfig{
		ClientID:    cfg.SpotifyClientID,
		RedirectURI: cfg.RedirectURI,
	}, log)

	// Core service and the driving adapter.
	svc := services.NewOrchestrator(analyzer, source, spotifyClient, log)
	handler := rest.NewHandler(svc, flow, sessions, log, cfg.DevMode)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	log.Info().
		Str("addr", cfg.Addr).
		Str("strategy", cfg.Strategy).
		Str("market", cfg.Market).
		Msg("Feelist API is running")

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}
}
