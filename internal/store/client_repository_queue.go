package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/models"
)

type pendingChangeQueue struct {
	*DB
	logger *logger.Logger
}

// NewPendingChangeQueue constructs a [PendingChangeQueue] backed by the
// agent's SQLite database.
func NewPendingChangeQueue(db *DB, logger *logger.Logger) PendingChangeQueue {
	return &pendingChangeQueue{
		DB:     db,
		logger: logger,
	}
}

func (q *pendingChangeQueue) Enqueue(ctx context.Context, change models.PendingChange) error {
	log := logger.FromContext(ctx)

	var payload any
	if len(change.Payload) > 0 {
		payload = string(change.Payload)
	}

	_, err := q.DB.ExecContext(ctx, enqueuePendingChange,
		change.EntityType,
		change.EntityID,
		string(change.Operation),
		payload,
		change.ClientRowVersion,
		change.ClientModifiedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "pendingChangeQueue.Enqueue").
			Str("entity_type", change.EntityType).
			Int64("entity_id", change.EntityID).
			Msg("failed to enqueue pending change")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (q *pendingChangeQueue) List(ctx context.Context) ([]models.PendingChange, int64, error) {
	log := logger.FromContext(ctx)

	rows, err := q.DB.QueryContext(ctx, listPendingChanges)
	if err != nil {
		log.Err(err).
			Str("func", "pendingChangeQueue.List").
			Msg("failed to query pending changes")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var changes []models.PendingChange
	var lastID int64

	for rows.Next() {
		var change models.PendingChange
		var operation string
		var payload sql.NullString

		if err := rows.Scan(
			&lastID,
			&change.EntityType,
			&change.EntityID,
			&operation,
			&payload,
			&change.ClientRowVersion,
			&change.ClientModifiedAt,
		); err != nil {
			log.Err(err).
				Str("func", "pendingChangeQueue.List").
				Msg("failed to scan pending change row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		change.Operation = models.Operation(operation)
		if payload.Valid {
			change.Payload = []byte(payload.String)
		}
		changes = append(changes, change)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return changes, lastID, nil
}

func (q *pendingChangeQueue) Purge(ctx context.Context, throughID int64) error {
	log := logger.FromContext(ctx)

	if _, err := q.DB.ExecContext(ctx, purgePendingChanges, throughID); err != nil {
		log.Err(err).
			Str("func", "pendingChangeQueue.Purge").
			Int64("through_id", throughID).
			Msg("failed to purge pending changes")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
