package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment,
// loading a .env file first if one exists. The assist API key is
// deliberately environment-only so it never lands in a config file
// checked into a repository.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("IDEAFLOW_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("IDEAFLOW_ASSIST_ENDPOINT"); v != "" {
		cfg.AssistEndpoint = v
	}
	if v := os.Getenv("IDEAFLOW_ASSIST_API_KEY"); v != "" {
		cfg.AssistAPIKey = v
	}
	if v := os.Getenv("IDEAFLOW_LISTEN"); v != "" {
		cfg.ListenAddr = v
	}
}
