package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/cartopolis.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// RedisURL is optional. When set, the leaderboard is persisted to redis
	// instead of the sqlite blobs table.
	RedisURL string `env:"REDIS_URL"`

	// ResetHourUTC is the wall-clock hour (UTC) of the daily leaderboard
	// reset. 11 matches the product's historical 12:00 CET reset.
	ResetHourUTC int `env:"RESET_HOUR_UTC" envDefault:"11"`

	WikiBaseURL string        `env:"WIKI_BASE_URL" envDefault:"https://en.wikipedia.org"`
	WikiTimeout time.Duration `env:"WIKI_TIMEOUT" envDefault:"4s"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.ResetHourUTC < 0 || cfg.ResetHourUTC > 23 {
		return nil, fmt.Errorf("RESET_HOUR_UTC must be 0..23, got %d", cfg.ResetHourUTC)
	}
	return &cfg, nil
}
