package config

import "fmt"

// knownStrategies is the set of resolution strategy names accepted in the
// sync configuration. Kept as strings here so the config package does not
// depend on the models package.
var knownStrategies = map[string]struct{}{
	"server_wins": {},
	"client_wins": {},
	"merge":       {},
	"manual":      {},
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if _, ok := knownStrategies[cfg.Sync.DefaultStrategy]; !ok {
		return fmt.Errorf("%w: unknown default strategy %q", ErrInvalidSyncConfigs, cfg.Sync.DefaultStrategy)
	}

	for entityType, strategy := range cfg.Sync.Strategies {
		if _, ok := knownStrategies[strategy]; !ok {
			return fmt.Errorf("%w: unknown strategy %q for entity type %q",
				ErrInvalidSyncConfigs, strategy, entityType)
		}
	}

	if cfg.Sync.SessionLockTimeout <= 0 {
		return fmt.Errorf("%w: session lock timeout must be positive", ErrInvalidSyncConfigs)
	}

	return nil
}

func (cfg *AgentConfig) validate() error {
	if cfg.Storage.DBPath == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.BaseURL == "" || cfg.Server.RequestTimeout == 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
