package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Input length limits, matching the column sizes in the schema.
const (
	MaxWordLength        = 255
	MaxTranslationLength = 500
	MaxExampleLength     = 2000
)

// Config holds all runtime settings, read from the environment.
type Config struct {
	// Telegram bot token (BOT_TOKEN)
	BotToken string
	// Database driver: "sqlite" or "postgres" (DB_TYPE)
	DBType string
	// Postgres connection string (DATABASE_URL); ignored for sqlite
	DatabaseURL string
	// Path to the sqlite file (SQLITE_PATH)
	SQLitePath string
	// Logger environment: "development" or "production" (APP_ENV)
	AppEnv string
	// Upper bound on any single store operation (STORE_TIMEOUT)
	StoreTimeout time.Duration
	// Comma-separated admin Telegram IDs (ADMIN_USER_IDS)
	AdminIDs string
	// Hour-of-day window for training reminders
	NotificationStartHour int
	NotificationEndHour   int
	// Disable the reminder scheduler entirely (ENABLE_SCHEDULER=false)
	SchedulerEnabled bool
}

// Load reads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:              os.Getenv("BOT_TOKEN"),
		DBType:                envOr("DB_TYPE", "sqlite"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		SQLitePath:            envOr("SQLITE_PATH", "data/linguaflow.db"),
		AppEnv:                envOr("APP_ENV", "development"),
		StoreTimeout:          envDuration("STORE_TIMEOUT", 5*time.Second),
		AdminIDs:              os.Getenv("ADMIN_USER_IDS"),
		NotificationStartHour: envInt("NOTIFICATION_START_HOUR", 8),
		NotificationEndHour:   envInt("NOTIFICATION_END_HOUR", 22),
		SchedulerEnabled:      os.Getenv("ENABLE_SCHEDULER") != "false",
	}

	if cfg.DBType != "sqlite" && cfg.DBType != "postgres" {
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.DBType)
	}
	if cfg.DBType == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when DB_TYPE=postgres")
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
