package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_DefaultsSeedMergePolicy(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "server_wins", cfg.Sync.DefaultStrategy)
	assert.Equal(t, "merge", cfg.Sync.Strategies["learning_progress"])
	assert.Equal(t, "merge", cfg.Sync.Strategies["word_list"])
	assert.NotContains(t, cfg.Sync.Strategies, "vocabulary")
}

func TestBuild_ExplicitStrategyBeatsDefault(t *testing.T) {
	builder := newConfigBuilder()
	builder.configs = append(builder.configs, &StructuredConfig{
		Sync: Sync{
			Strategies: map[string]string{"learning_progress": "manual"},
		},
	})

	cfg, err := builder.withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "manual", cfg.Sync.Strategies["learning_progress"])
	assert.Equal(t, "merge", cfg.Sync.Strategies["word_list"])
}
