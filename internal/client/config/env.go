package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with STUDYPILOT_* environment variables.
// A .env file in the working directory is loaded first, if present;
// real environment variables win over .env entries (godotenv semantics).
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("STUDYPILOT_SERVER_URL"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("STUDYPILOT_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("STUDYPILOT_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryLimit = n
		}
	}
}
