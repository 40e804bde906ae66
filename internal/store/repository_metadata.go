package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/models"
)

// syncMetadataRepository is the PostgreSQL-backed implementation of
// [SyncMetadataRepository].
type syncMetadataRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncMetadataRepository constructs a [SyncMetadataRepository] backed by
// the provided database connection and logger.
func NewSyncMetadataRepository(db *DB, logger *logger.Logger) SyncMetadataRepository {
	logger.Debug().Msg("creating sync metadata repository")
	return &syncMetadataRepository{
		DB:     db,
		logger: logger,
	}
}

// Get implements [SyncMetadataRepository].
func (r *syncMetadataRepository) Get(ctx context.Context, userID int64, deviceID string) (models.SyncMetadata, error) {
	log := logger.FromContext(ctx)

	var m models.SyncMetadata
	row := r.DB.QueryRowContext(ctx, getSyncMetadata, userID, deviceID)

	err := row.Scan(
		&m.UserID,
		&m.DeviceID,
		&m.LastSyncTime,
		&m.ItemsSynced,
		&m.ConflictsDetected,
		&m.ConflictsResolved,
		&m.SyncStatus,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncMetadata{}, ErrMetadataNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*syncMetadataRepository.Get").
			Int64("user_id", userID).
			Str("device_id", deviceID).
			Msg("failed to scan metadata row")
		return models.SyncMetadata{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return m, nil
}

// Upsert implements [SyncMetadataRepository].
func (r *syncMetadataRepository) Upsert(ctx context.Context, metadata models.SyncMetadata) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, upsertSyncMetadata,
		metadata.UserID,
		metadata.DeviceID,
		metadata.LastSyncTime,
		metadata.ItemsSynced,
		metadata.ConflictsDetected,
		metadata.ConflictsResolved,
		metadata.SyncStatus,
	)
	if err != nil {
		log.Err(err).
			Str("func", "*syncMetadataRepository.Upsert").
			Int64("user_id", metadata.UserID).
			Str("device_id", metadata.DeviceID).
			Msg("failed to upsert metadata row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// MinLastSyncTime implements [SyncMetadataRepository]. MIN over an empty set
// comes back as SQL NULL, which maps to ErrMetadataNotFound.
func (r *syncMetadataRepository) MinLastSyncTime(ctx context.Context, userID int64) (time.Time, error) {
	log := logger.FromContext(ctx)

	var min sql.NullTime
	err := r.DB.QueryRowContext(ctx, minLastSyncTime, userID).Scan(&min)
	if err != nil {
		log.Err(err).
			Str("func", "*syncMetadataRepository.MinLastSyncTime").
			Int64("user_id", userID).
			Msg("failed to scan min last sync time")
		return time.Time{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if !min.Valid {
		return time.Time{}, ErrMetadataNotFound
	}

	return min.Time, nil
}
