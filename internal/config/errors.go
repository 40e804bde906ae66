package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidSyncConfigs indicates invalid sync policy settings
	// (for example, an unknown resolution strategy name).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")

	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database path on the agent).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidServerConfigs indicates invalid agent server settings
	// (for example, missing base URL or request timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
