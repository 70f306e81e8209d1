package config

import (
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	Port          string `env:"PORT" envDefault:"8080"`
	Env           string `env:"ENV" envDefault:"development"`
	SessionSecret string `env:"SESSION_SECRET"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// OutboxSweepSchedule is the cron spec for re-enqueueing pending outbox
	// events whose fan-out task was lost.
	OutboxSweepSchedule string `env:"OUTBOX_SWEEP_SCHEDULE" envDefault:"@every 1m"`

	// Recommendation API credentials. When either is empty, the
	// recommendations endpoint serves stubbed data.
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	OpenWeatherAPIKey string `env:"OPENWEATHER_API_KEY"`

	SeedDevData bool `env:"SEED_DEV_DATA"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	// Warn if using default session secret (insecure for production)
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "dev-secret-change-in-production-use-openssl-rand-hex-32"
		slog.Warn("Using default SESSION_SECRET. Generate a secure secret with: openssl rand -hex 32")
	}

	return &cfg, nil
}
