package store

import (
	"context"
	"fmt"

	"github.com/kotobadev/kotoba-sync/internal/config"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/migrations"
)

// Storages groups all server-side repositories into a single value that can
// be passed around the service layer.
type Storages struct {
	UserRepository UserRepository
	VersionedStore VersionedStore
	Metadata       SyncMetadataRepository
	ConflictLedger ConflictLedger
	Tombstones     TombstoneRepository
}

// NewStorages initialises the server storage layer: it connects to PostgreSQL
// using cfg.DB.DSN, applies pending schema migrations, and wires every
// repository to the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := migrations.Migrate(db.DB); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		VersionedStore: NewVersionedStore(db, logger),
		Metadata:       NewSyncMetadataRepository(db, logger),
		ConflictLedger: NewConflictLedger(db, logger),
		Tombstones:     NewTombstoneRepository(db, logger),
	}, nil
}
