package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_ServerConfig(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:9999")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "45s")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://u:p@localhost:5432/kotoba")
	t.Setenv("APP_TOKEN_ISSUER", "test-issuer")
	t.Setenv("SYNC_DEFAULT_STRATEGY", "client_wins")
	t.Setenv("SYNC_SESSION_LOCK_TIMEOUT", "90s")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "0.0.0.0:9999", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "postgres://u:p@localhost:5432/kotoba", cfg.Storage.DB.DSN)
	assert.Equal(t, "test-issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "client_wins", cfg.Sync.DefaultStrategy)
	assert.Equal(t, 90*time.Second, cfg.Sync.SessionLockTimeout)
}

func TestParseEnv_StrategyMap(t *testing.T) {
	t.Setenv("SYNC_STRATEGIES", "learning_progress:merge,word_list:merge")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "merge", cfg.Sync.Strategies["learning_progress"])
	assert.Equal(t, "merge", cfg.Sync.Strategies["word_list"])
}

func TestParseAgentEnv_Prefixed(t *testing.T) {
	t.Setenv("AGENT_SERVER_BASE_URL", "http://sync.example:8080")
	t.Setenv("AGENT_STORAGE_DB_PATH", "/tmp/agent.db")
	t.Setenv("AGENT_SYNC_DEVICE_ID", "phoneA")
	t.Setenv("AGENT_SYNC_INTERVAL", "2m")

	cfg := &AgentConfig{}
	require.NoError(t, parseAgentEnv(cfg))

	assert.Equal(t, "http://sync.example:8080", cfg.Server.BaseURL)
	assert.Equal(t, "/tmp/agent.db", cfg.Storage.DBPath)
	assert.Equal(t, "phoneA", cfg.Sync.DeviceID)
	assert.Equal(t, 2*time.Minute, cfg.Sync.Interval)
}

func TestStructuredConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "valid defaults",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name: "unknown default strategy",
			mutate: func(cfg *StructuredConfig) {
				cfg.Sync.DefaultStrategy = "coin_flip"
			},
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name: "unknown per-type strategy",
			mutate: func(cfg *StructuredConfig) {
				cfg.Sync.Strategies = map[string]string{"vocabulary": "yolo"}
			},
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name: "non-positive lock timeout",
			mutate: func(cfg *StructuredConfig) {
				cfg.Sync.SessionLockTimeout = 0
			},
			wantErr: ErrInvalidSyncConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &StructuredConfig{
				Sync: Sync{
					DefaultStrategy:    "server_wins",
					SessionLockTimeout: 60 * time.Second,
				},
			}
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
