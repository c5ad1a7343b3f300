// Package config assembles runtime settings for the IdeaFlow clients.
//
// Sources are applied in order, later ones winning:
// defaults -> .env / environment -> JSON file (-c/-config) -> flags.
package config

import "time"

// Config holds runtime settings shared by the REPL and web front-ends.
//
// DeployDelay and NotifyDuration drive the simulated store deployment and
// the transient success banner; they are configurable mostly so tests and
// demos do not have to sit through the production timings.
type Config struct {
	DatabasePath   string
	AssistEndpoint string
	AssistAPIKey   string
	ListenAddr     string
	DeployDelay    time.Duration
	NotifyDuration time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "ideaflow.db"
	c.AssistEndpoint = "https://api.ideaflow.app/assist"
	c.ListenAddr = ":8990"
	c.DeployDelay = 4 * time.Second
	c.NotifyDuration = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
