package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config keeps runtime settings for the server.
type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseURL    string        `env:"DATABASE_URL" envDefault:"task_manager.db"`
	CORSOrigins    string        `env:"CORS_ORIGINS" envDefault:"http://localhost:5173,http://localhost:3000"`
	ReportInterval time.Duration `env:"REPORT_INTERVAL" envDefault:"0"`
	TelegramToken  string        `env:"TELEGRAM_TOKEN"`
	TelegramChatID int64         `env:"TELEGRAM_CHAT_ID"`
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}
