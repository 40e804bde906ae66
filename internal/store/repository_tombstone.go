package store

import (
	"context"
	"fmt"
	"time"

	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/models"
)

// tombstoneRepository is the PostgreSQL-backed implementation of
// [TombstoneRepository].
type tombstoneRepository struct {
	*DB
	logger *logger.Logger
}

// NewTombstoneRepository constructs a [TombstoneRepository] backed by the
// provided database connection and logger.
func NewTombstoneRepository(db *DB, logger *logger.Logger) TombstoneRepository {
	logger.Debug().Msg("creating tombstone repository")
	return &tombstoneRepository{
		DB:     db,
		logger: logger,
	}
}

// ListSince implements [TombstoneRepository].
func (r *tombstoneRepository) ListSince(ctx context.Context, userID int64, since *time.Time) ([]models.DeletedItem, error) {
	log := logger.FromContext(ctx)

	// A device with no checkpoint holds no prior state, so there is nothing
	// for it to delete.
	if since == nil {
		return nil, nil
	}

	rows, err := r.DB.QueryContext(ctx, listTombstonesSince, userID, *since)
	if err != nil {
		log.Err(err).
			Str("func", "*tombstoneRepository.ListSince").
			Int64("user_id", userID).
			Msg("failed to execute tombstone list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.DeletedItem, 0, 20)

	for rows.Next() {
		var item models.DeletedItem

		scanErr := rows.Scan(&item.EntityType, &item.EntityID, &item.UserID, &item.DeletedAt, &item.DeletionReason)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*tombstoneRepository.ListSince").
				Int64("user_id", userID).
				Msg("failed to scan tombstone row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*tombstoneRepository.ListSince").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

// PurgeExpired implements [TombstoneRepository].
func (r *tombstoneRepository) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, purgeExpiredTombstones, cutoff)
	if err != nil {
		log.Err(err).
			Str("func", "*tombstoneRepository.PurgeExpired").
			Time("cutoff", cutoff).
			Msg("failed to purge expired tombstones")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return purged, nil
}
