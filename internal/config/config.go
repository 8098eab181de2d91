package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Cyclone1070/songscout-backend/internal/scraper"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"local"`
	Port     int    `env:"PORT" envDefault:"5000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	SearchURL           string        `env:"SEARCH_URL" envDefault:"https://www.youtube.com/results"`
	SearchMaxResults    int           `env:"SEARCH_MAX_RESULTS" envDefault:"10"`
	RecommendMaxResults int           `env:"RECOMMEND_MAX_RESULTS" envDefault:"10"`
	RecommendPoolSize   int           `env:"RECOMMEND_POOL_SIZE" envDefault:"20"`
	DefaultMood         string        `env:"DEFAULT_MOOD" envDefault:"happy"`
	MoodQuerySuffix     string        `env:"MOOD_QUERY_SUFFIX" envDefault:" songs playlist"`
	FetchMode           string        `env:"FETCH_MODE" envDefault:"http"`
	FetchTimeout        time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	ChromePath          string        `env:"CHROME_PATH"`

	CookiesPath  string        `env:"COOKIES_PATH"`
	YTDLPPath    string        `env:"YTDLP_PATH" envDefault:"yt-dlp"`
	AudioTimeout time.Duration `env:"AUDIO_TIMEOUT" envDefault:"30s"`
	AudioRPS     float64       `env:"AUDIO_RPS" envDefault:"2"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"PORT", c.Port},
		{"SEARCH_MAX_RESULTS", c.SearchMaxResults},
		{"RECOMMEND_MAX_RESULTS", c.RecommendMaxResults},
		{"RECOMMEND_POOL_SIZE", c.RecommendPoolSize},
	}
	for _, field := range positive {
		if field.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, field.name, field.value)
		}
	}
	if c.FetchMode != scraper.ModeHTTP && c.FetchMode != scraper.ModeBrowser {
		return fmt.Errorf("%w: FETCH_MODE must be %q or %q, got %q", ErrInvalidConfig, scraper.ModeHTTP, scraper.ModeBrowser, c.FetchMode)
	}
	if c.FetchTimeout <= 0 || c.AudioTimeout <= 0 {
		return fmt.Errorf("%w: FETCH_TIMEOUT and AUDIO_TIMEOUT must be positive", ErrInvalidConfig)
	}
	if c.SearchURL == "" {
		return fmt.Errorf("%w: SEARCH_URL is empty", ErrInvalidConfig)
	}

	return nil
}

// IsLocal reports whether the service runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.AppEnv == "local"
}
