package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds environment-driven settings. Storage backend
// selection stays on command-line flags in cmd/main.go.
type AppConfig struct {
	LogLevel       string
	Environment    string
	SweepCronSpec  string
	TelegramToken  string
	TelegramChatID int64
}

// Load reads configuration from environment variables and an optional
// .env file. godotenv does not override variables already set in the
// environment.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.SweepCronSpec = os.Getenv("SWEEP_CRON_SPEC")
	if cfg.SweepCronSpec == "" {
		cfg.SweepCronSpec = "* * * * *" // every minute
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	if chatIDStr := os.Getenv("TELEGRAM_CHAT_ID"); chatIDStr != "" {
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = chatID
	}

	return cfg, nil
}
