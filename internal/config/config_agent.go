package config

import "time"

// AgentConfig is the configuration for the device agent (cmd/agent). It is
// assembled the same way as the server config: environment variables first,
// then flags, then defaults.
type AgentConfig struct {
	// Server holds the remote sync-server connection settings.
	Server AgentServer `envPrefix:"SERVER_"`

	// Storage holds the local SQLite database settings.
	Storage AgentStorage `envPrefix:"STORAGE_"`

	// Sync holds the periodic sync job settings.
	Sync AgentSync `envPrefix:"SYNC_"`
}

// AgentServer holds the remote server endpoint settings for the agent.
type AgentServer struct {
	// BaseURL is the sync server's base URL
	// (e.g. "http://localhost:8080").
	// Env: AGENT_SERVER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds each outbound API call.
	// Env: AGENT_SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// AgentStorage holds the agent's local database settings.
type AgentStorage struct {
	// DBPath is the path to the local SQLite database file.
	// Env: AGENT_STORAGE_DB_PATH
	DBPath string `env:"DB_PATH"`
}

// AgentSync holds the periodic background sync settings.
type AgentSync struct {
	// DeviceID identifies this device to the server. Generated and stored
	// locally on first run when empty.
	// Env: AGENT_SYNC_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`

	// Interval is how often the background sync job runs. Zero disables
	// the job (manual sync only).
	// Env: AGENT_SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`
}

// GetAgentConfig loads and validates the device-agent configuration from
// environment variables (prefix AGENT_), agent command-line flags, and
// built-in defaults.
func GetAgentConfig() (*AgentConfig, error) {
	cfg := &AgentConfig{}
	if err := parseAgentEnv(cfg); err != nil {
		return nil, err
	}

	mergeAgentFlags(cfg, ParseAgentFlags())
	applyAgentDefaults(cfg)

	return cfg, cfg.validate()
}

func mergeAgentFlags(dst *AgentConfig, flags *AgentConfig) {
	if dst.Server.BaseURL == "" {
		dst.Server.BaseURL = flags.Server.BaseURL
	}
	if dst.Server.RequestTimeout == 0 {
		dst.Server.RequestTimeout = flags.Server.RequestTimeout
	}
	if dst.Storage.DBPath == "" {
		dst.Storage.DBPath = flags.Storage.DBPath
	}
	if dst.Sync.DeviceID == "" {
		dst.Sync.DeviceID = flags.Sync.DeviceID
	}
	if dst.Sync.Interval == 0 {
		dst.Sync.Interval = flags.Sync.Interval
	}
}

func applyAgentDefaults(cfg *AgentConfig) {
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 15 * time.Second
	}
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = "kotoba-agent.db"
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = 5 * time.Minute
	}
}
