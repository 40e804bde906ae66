package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kotobadev/kotoba-sync/internal/logger"
)

type syncStateRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncStateRepository constructs a [SyncStateRepository] backed by the
// agent's SQLite database.
func NewSyncStateRepository(db *DB, logger *logger.Logger) SyncStateRepository {
	return &syncStateRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *syncStateRepository) DeviceID(ctx context.Context) (string, error) {
	deviceID, _, err := s.state(ctx)
	return deviceID, err
}

func (s *syncStateRepository) EnsureDeviceID(ctx context.Context, deviceID string) (string, error) {
	log := logger.FromContext(ctx)

	if _, err := s.DB.ExecContext(ctx, insertSyncState, deviceID); err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.EnsureDeviceID").
			Msg("failed to insert sync state")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	// the row may already hold an identity; return the effective one
	return s.DeviceID(ctx)
}

func (s *syncStateRepository) Checkpoint(ctx context.Context) (*time.Time, error) {
	_, checkpoint, err := s.state(ctx)
	if errors.Is(err, ErrLocalStateNotFound) {
		return nil, nil
	}
	return checkpoint, err
}

func (s *syncStateRepository) SetCheckpoint(ctx context.Context, t time.Time) error {
	log := logger.FromContext(ctx)

	if _, err := s.DB.ExecContext(ctx, setSyncCheckpoint, t.UTC()); err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.SetCheckpoint").
			Msg("failed to store sync checkpoint")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *syncStateRepository) state(ctx context.Context) (string, *time.Time, error) {
	log := logger.FromContext(ctx)

	var deviceID string
	var checkpoint sql.NullTime

	err := s.DB.QueryRowContext(ctx, getSyncState).Scan(&deviceID, &checkpoint)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, ErrLocalStateNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.state").
			Msg("failed to scan sync state row")
		return "", nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if !checkpoint.Valid {
		return deviceID, nil, nil
	}

	t := checkpoint.Time.UTC()
	return deviceID, &t, nil
}
