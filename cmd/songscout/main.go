package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Cyclone1070/songscout-backend/internal/api"
	"github.com/Cyclone1070/songscout-backend/internal/audio"
	"github.com/Cyclone1070/songscout-backend/internal/config"
	"github.com/Cyclone1070/songscout-backend/internal/scraper"
	"github.com/Cyclone1070/songscout-backend/internal/songscraper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher, err := scraper.NewFetcher(cfg.FetchMode, cfg.FetchTimeout, cfg.ChromePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build page fetcher")
	}

	searcher := songscraper.NewSearcher(fetcher, songscraper.Options{
		SearchURL:         cfg.SearchURL,
		DefaultMood:       cfg.DefaultMood,
		MoodSuffix:        cfg.MoodQuerySuffix,
		RecommendPoolSize: cfg.RecommendPoolSize,
	}, &logger)

	resolver := audio.NewResolver(cfg.CookiesPath, audio.YTDLPOptions{
		Binary:            cfg.YTDLPPath,
		Timeout:           cfg.AudioTimeout,
		RequestsPerSecond: cfg.AudioRPS,
	}, time.Now(), &logger)
	audioService := audio.NewService(resolver, &logger)

	server := api.NewServer(searcher, audioService, api.Limits{
		SearchMaxResults:    cfg.SearchMaxResults,
		RecommendMaxResults: cfg.RecommendMaxResults,
	}, cfg.Port, &logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
	logger.Info().Msg("server stopped")
}

func newLogger(appEnv, level string) zerolog.Logger {
	var logger zerolog.Logger
	if appEnv == "local" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	return logger.Level(parsed)
}
