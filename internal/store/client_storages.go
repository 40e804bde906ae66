package store

import (
	"context"
	"fmt"

	"github.com/kotobadev/kotoba-sync/internal/config"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/migrations"
)

// ClientStorages groups the agent-side repositories into a single value that
// can be passed around the agent's service layer.
type ClientStorages struct {
	// Entities is the local mirror of synced entities.
	Entities LocalEntityRepository

	// Queue holds local edits awaiting the next sync session.
	Queue PendingChangeQueue

	// State stores the device identity and the last sync checkpoint.
	State SyncStateRepository
}

// NewClientStorages initialises the agent storage layer: it opens the local
// SQLite database at cfg.DBPath, applies pending schema migrations, and wires
// every repository to the shared connection.
func NewClientStorages(ctx context.Context, cfg config.AgentStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new local storages...")

	db, err := NewConnectSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := migrations.MigrateSQLite(db.DB); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Entities: NewLocalEntityRepository(db, logger),
		Queue:    NewPendingChangeQueue(db, logger),
		State:    NewSyncStateRepository(db, logger),
	}, nil
}
