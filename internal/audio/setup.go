package audio

import (
	"os/exec"
	"time"

	"github.com/rs/zerolog"
)

// NewResolver builds the yt-dlp resolver used at startup. It returns nil when
// audio cannot work in this process: the binary is missing, or cookiesPath is
// set but unusable. An empty cookiesPath runs yt-dlp without cookies.
// Callers pass the result to NewService, which then reports ErrAudioUnavailable.
func NewResolver(cookiesPath string, opts YTDLPOptions, now time.Time, logger *zerolog.Logger) Resolver {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if opts.Binary == "" {
		opts.Binary = defaultYTDLPBinary
	}

	if _, err := exec.LookPath(opts.Binary); err != nil {
		logger.Error().Err(err).Str("binary", opts.Binary).Msg("yt-dlp not found, audio disabled")
		return nil
	}

	if cookiesPath == "" {
		logger.Warn().Msg("no cookie file configured, yt-dlp runs without cookies")
		return NewYTDLPResolver(nil, opts)
	}

	session, err := LoadSession(cookiesPath, now)
	if err != nil {
		logger.Error().Err(err).Msg("cookie session unusable, audio disabled")
		return nil
	}
	logger.Info().Int("cookies", session.Len()).Msg("cookie session loaded")

	return NewYTDLPResolver(session, opts)
}
