// Package audio resolves a playable audio stream for a single video id.
//
// Resolution is delegated to an external capability behind Resolver. The Service
// validates the id, makes exactly one call, and folds every failure into
// ErrResolutionFailed so callers see a single outcome.
package audio

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Cyclone1070/songscout-backend/internal/observability"
)

var (
	// ErrInvalidVideoID is returned for an empty or malformed id.
	ErrInvalidVideoID = errors.New("invalid video id")
	// ErrResolutionFailed is returned for any failure of the resolver.
	ErrResolutionFailed = errors.New("audio resolution failed")
	// ErrAudioUnavailable is returned when no resolver could be set up at startup.
	ErrAudioUnavailable = errors.New("audio resolution unavailable")
)

// videoIDPattern matches the platform's 11-character ids. Rejecting anything else
// also keeps ids from being read as command-line flags downstream.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Resolver turns a video id into a playable track.
type Resolver interface {
	Resolve(ctx context.Context, videoID string) (Track, error)
}

type Service struct {
	resolver Resolver
	logger   *zerolog.Logger
}

// NewService wraps resolver. A nil resolver yields a Service that answers every
// call with ErrAudioUnavailable.
func NewService(resolver Resolver, logger *zerolog.Logger) *Service {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Service{resolver: resolver, logger: logger}
}

// Available reports whether the service can resolve audio at all.
func (s *Service) Available() bool {
	return s.resolver != nil
}

func (s *Service) Resolve(ctx context.Context, videoID string) (Track, error) {
	videoID = strings.TrimSpace(videoID)
	if !videoIDPattern.MatchString(videoID) {
		observability.AudioResolutions.WithLabelValues("invalid").Inc()
		return Track{}, fmt.Errorf("%w: %q", ErrInvalidVideoID, videoID)
	}
	if s.resolver == nil {
		observability.AudioResolutions.WithLabelValues("unavailable").Inc()
		return Track{}, ErrAudioUnavailable
	}

	start := time.Now()
	track, err := s.resolver.Resolve(ctx, videoID)
	observability.AudioDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.AudioResolutions.WithLabelValues("failed").Inc()
		s.logger.Debug().Err(err).Str("video_id", videoID).Msg("audio resolution failed")
		return Track{}, fmt.Errorf("%w: %w", ErrResolutionFailed, err)
	}
	if track.AudioURL == "" {
		observability.AudioResolutions.WithLabelValues("failed").Inc()
		s.logger.Debug().Str("video_id", videoID).Msg("resolver returned no audio url")
		return Track{}, fmt.Errorf("%w: empty audio url", ErrResolutionFailed)
	}

	observability.AudioResolutions.WithLabelValues("ok").Inc()
	return track, nil
}
