package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/student-spending/spendboard/internal/session"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Spendboard"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	API struct {
		URL     string        `envconfig:"API_URL" default:"http://localhost:8000"`
		Timeout time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	}

	Server struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
		MaxUploadBytes int64    `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
		RateLimit      float64  `envconfig:"RATE_LIMIT_RPS" default:"10"`
		RateBurst      int      `envconfig:"RATE_LIMIT_BURST" default:"30"`
	}

	Stats struct {
		CacheTTL time.Duration `envconfig:"STATS_CACHE_TTL" default:"5m"`
	}

	// SessionPath defaults to the user's config directory when empty.
	SessionPath string `envconfig:"SESSION_PATH"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.SessionPath == "" {
		path, err := session.DefaultPath()
		if err != nil {
			return nil, err
		}

		cfg.SessionPath = path
	}

	return &cfg, nil
}
