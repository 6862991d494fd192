package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the settings the frontend needs at startup. Everything comes
// from the environment; a local .env file is loaded when present.
type Config struct {
	APIBaseURL    string // base URL of the remote auction service
	Port          string
	SessionCookie string // cookie key holding the current-user record
	LogLevel      string
}

// Load reads configuration from the environment with development defaults.
func Load() Config {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	return Config{
		APIBaseURL:    envOr("API_BASE_URL", "http://localhost:3000"),
		Port:          envOr("PORT", "8080"),
		SessionCookie: envOr("SESSION_COOKIE", "currentUser"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
	}
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
