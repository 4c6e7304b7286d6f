package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	APIBaseURL string
	Email      string
	Password   string
	DemoMode   bool
	JWTSecret  string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads .env (if present) and assembles the runtime configuration.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8000"),
		Email:      getEnv("TRACKER_EMAIL", "demo@achievement-tracker.com"),
		Password:   getEnv("TRACKER_PASSWORD", "demo123"),
		DemoMode:   getEnv("DEMO_MODE", "") == "true",
		JWTSecret:  getEnv("JWT_SECRET", "devsecret"),
	}
}

// InitLogging configures the global zerolog logger from LOG_LEVEL.
func InitLogging() {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
}
