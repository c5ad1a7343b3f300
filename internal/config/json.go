package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/ideaflow/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// are plain seconds so config files stay trivial to write by hand.
type jsonConfig struct {
	DatabasePath       string `json:"database_path"`
	AssistEndpoint     string `json:"assist_endpoint"`
	ListenAddr         string `json:"listen_addr"`
	DeployDelaySeconds int    `json:"deploy_delay_seconds"`
	NotifySeconds      int    `json:"notify_seconds"`
}

// parseJSON overlays Config with values loaded from the JSON file named by
// the -c/-config flag. Absent flag means no JSON stage. Read or decode
// errors panic; there is no sane way to continue with a half-read config.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc jsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.AssistEndpoint != "" {
		cfg.AssistEndpoint = jc.AssistEndpoint
	}
	if jc.ListenAddr != "" {
		cfg.ListenAddr = jc.ListenAddr
	}
	if jc.DeployDelaySeconds > 0 {
		cfg.DeployDelay = time.Duration(jc.DeployDelaySeconds) * time.Second
	}
	if jc.NotifySeconds > 0 {
		cfg.NotifyDuration = time.Duration(jc.NotifySeconds) * time.Second
	}
}
