package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags := ParseFlags()

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath != "" {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}

// withDefaults appends the built-in fallback values. mergo.Merge only fills
// zero fields, so defaults lose to every explicit source.
func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		App: App{
			TokenIssuer:   "kotoba-sync",
			TokenDuration: 24 * time.Hour,
		},
		Sync: Sync{
			DefaultStrategy: "server_wins",
			// Progress counters and personal word lists merge cleanly;
			// vocabulary edits stay on the server-wins default.
			Strategies: map[string]string{
				"learning_progress": "merge",
				"word_list":         "merge",
			},
			SessionLockTimeout: 60 * time.Second,
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Workers: Workers{
			TombstoneRetention: 30 * 24 * time.Hour,
		},
	})
	return b
}
