// Package api exposes song search, mood recommendations and audio resolution
// over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Cyclone1070/songscout-backend/internal/audio"
	"github.com/Cyclone1070/songscout-backend/internal/songscraper"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// SongFinder is the extraction pipeline as seen by the handlers.
type SongFinder interface {
	Search(ctx context.Context, query string, maxResults int) ([]songscraper.SongRecord, error)
	Recommend(ctx context.Context, mood string, maxResults int) ([]songscraper.SongRecord, error)
}

// AudioResolver resolves a playable stream for one video id.
type AudioResolver interface {
	Resolve(ctx context.Context, videoID string) (audio.Track, error)
}

type Limits struct {
	SearchMaxResults    int
	RecommendMaxResults int
}

type Server struct {
	songs  SongFinder
	audio  AudioResolver
	limits Limits
	port   int
	logger *zerolog.Logger
}

func NewServer(songs SongFinder, resolver AudioResolver, limits Limits, port int, logger *zerolog.Logger) *Server {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if limits.SearchMaxResults <= 0 {
		limits.SearchMaxResults = 10
	}
	if limits.RecommendMaxResults <= 0 {
		limits.RecommendMaxResults = 10
	}
	return &Server{songs: songs, audio: resolver, limits: limits, port: port, logger: logger}
}

// Handler builds the router with every route and middleware mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/search", s.handleSearch)
	r.Get("/recommend", s.handleRecommend)
	r.Get("/audio/{videoId}", s.handleAudio)
	r.Get("/ping", s.handlePing)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		//nolint:errcheck,contextcheck // best-effort shutdown on a fresh context
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info().Int("port", s.port).Msg("API server starting")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}
