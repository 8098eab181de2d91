package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// ErrNoAudioFormat is returned when yt-dlp lists no audio stream for the video.
var ErrNoAudioFormat = errors.New("no audio format")

const (
	defaultYTDLPBinary  = "yt-dlp"
	defaultYTDLPTimeout = 30 * time.Second
	watchURLPrefix      = "https://www.youtube.com/watch?v="
	limiterBurst        = 2
)

// commandRunner runs name with args and returns its stdout.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// YTDLPResolver asks the yt-dlp binary for the best audio stream of a video.
// Outbound calls share one rate limiter so a burst of client selections does not
// turn into a burst against the platform.
type YTDLPResolver struct {
	binary  string
	session *Session
	timeout time.Duration
	limiter *rate.Limiter
	run     commandRunner
}

type YTDLPOptions struct {
	// Binary is the yt-dlp executable; empty means "yt-dlp" on PATH.
	Binary  string
	Timeout time.Duration
	// RequestsPerSecond bounds outbound resolutions; zero or less means unlimited.
	RequestsPerSecond float64
}

// NewYTDLPResolver builds a resolver. session may be nil, in which case yt-dlp
// runs without cookies.
func NewYTDLPResolver(session *Session, opts YTDLPOptions) *YTDLPResolver {
	if opts.Binary == "" {
		opts.Binary = defaultYTDLPBinary
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultYTDLPTimeout
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	return &YTDLPResolver{
		binary:  opts.Binary,
		session: session,
		timeout: opts.Timeout,
		limiter: rate.NewLimiter(limit, limiterBurst),
		run:     execRunner,
	}
}

func (r *YTDLPResolver) Resolve(ctx context.Context, videoID string) (Track, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return Track{}, fmt.Errorf("rate limiter wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	output, err := r.run(ctx, r.binary, r.args(videoID)...)
	if err != nil {
		return Track{}, err
	}
	return parseYTDLPOutput(output)
}

func (r *YTDLPResolver) args(videoID string) []string {
	args := []string{
		"-J",
		"--no-warnings",
		"--no-playlist",
		"--skip-download",
		"-f", "bestaudio/best",
	}
	if r.session != nil {
		args = append(args, "--cookies", r.session.Path())
	}
	return append(args, "--", watchURLPrefix+videoID)
}

// parseYTDLPOutput reads the info JSON yt-dlp prints for a single video.
func parseYTDLPOutput(output []byte) (Track, error) {
	if !gjson.ValidBytes(output) {
		return Track{}, errors.New("yt-dlp printed invalid JSON")
	}
	info := gjson.ParseBytes(output)

	audioURL := info.Get("url").String()
	if audioURL == "" {
		audioURL = info.Get("requested_formats.0.url").String()
	}
	if audioURL == "" {
		audioURL = bestAudioFormatURL(info.Get("formats").Array())
	}
	if audioURL == "" {
		return Track{}, ErrNoAudioFormat
	}

	channel := info.Get("channel").String()
	if channel == "" {
		channel = info.Get("uploader").String()
	}

	return Track{
		AudioURL:  audioURL,
		Title:     info.Get("title").String(),
		Thumbnail: info.Get("thumbnail").String(),
		Channel:   channel,
	}, nil
}

// bestAudioFormatURL picks the audio-only format with the highest bitrate.
func bestAudioFormatURL(formats []gjson.Result) string {
	bestURL := ""
	bestBitrate := -1.0
	for _, format := range formats {
		if format.Get("vcodec").String() != "none" || format.Get("acodec").String() == "none" {
			continue
		}
		url := format.Get("url").String()
		if url == "" {
			continue
		}
		if bitrate := format.Get("abr").Float(); bitrate > bestBitrate {
			bestBitrate = bitrate
			bestURL = url
		}
	}
	return bestURL
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
