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

// conflictLedger is the PostgreSQL-backed implementation of [ConflictLedger].
type conflictLedger struct {
	*DB
	logger *logger.Logger
}

// NewConflictLedger constructs a [ConflictLedger] backed by the provided
// database connection and logger.
func NewConflictLedger(db *DB, logger *logger.Logger) ConflictLedger {
	logger.Debug().Msg("creating conflict ledger")
	return &conflictLedger{
		DB:     db,
		logger: logger,
	}
}

// Append implements [ConflictLedger].
func (l *conflictLedger) Append(ctx context.Context, conflict models.SyncConflict) error {
	log := logger.FromContext(ctx)

	_, err := l.DB.ExecContext(ctx, insertConflict,
		conflict.ConflictID,
		conflict.UserID,
		conflict.DeviceID,
		conflict.EntityType,
		conflict.EntityID,
		conflict.ConflictType,
		[]byte(conflict.ClientData),
		[]byte(conflict.ServerData),
		conflict.ResolutionStrategy,
		nullableBytes(conflict.ResolutionData),
		conflict.ConflictStatus,
		conflict.ClientModifiedAt,
		conflict.ServerModifiedAt,
		conflict.DetectedAt,
		conflict.ResolvedAt,
		nullableString(conflict.ResolvedBy),
	)
	if err != nil {
		log.Err(err).
			Str("func", "*conflictLedger.Append").
			Str("conflict_id", conflict.ConflictID).
			Msg("failed to insert conflict")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Get implements [ConflictLedger].
func (l *conflictLedger) Get(ctx context.Context, conflictID string) (models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	row := l.DB.QueryRowContext(ctx, getConflict, conflictID)

	conflict, err := scanConflict(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncConflict{}, ErrConflictNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*conflictLedger.Get").
			Str("conflict_id", conflictID).
			Msg("failed to scan conflict row")
		return models.SyncConflict{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return conflict, nil
}

// MarkResolved implements [ConflictLedger]. The status guard in the statement
// keeps settled rows immutable; a zero-row update is disambiguated with an
// existence probe.
func (l *conflictLedger) MarkResolved(ctx context.Context, conflictID string, resolutionData []byte, resolvedBy string) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, markConflictResolved, resolutionData, resolvedBy, conflictID)
	if err != nil {
		log.Err(err).
			Str("func", "*conflictLedger.MarkResolved").
			Str("conflict_id", conflictID).
			Msg("failed to mark conflict resolved")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return l.checkTransition(ctx, result, conflictID)
}

// MarkIgnored implements [ConflictLedger].
func (l *conflictLedger) MarkIgnored(ctx context.Context, conflictID string, resolvedBy string) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, markConflictIgnored, resolvedBy, conflictID)
	if err != nil {
		log.Err(err).
			Str("func", "*conflictLedger.MarkIgnored").
			Str("conflict_id", conflictID).
			Msg("failed to mark conflict ignored")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return l.checkTransition(ctx, result, conflictID)
}

// ListByUser implements [ConflictLedger].
func (l *conflictLedger) ListByUser(ctx context.Context, userID int64, status models.ConflictStatus, limit uint64) ([]models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListConflictsQuery(userID, status, limit)
	if err != nil {
		log.Err(err).
			Str("func", "*conflictLedger.ListByUser").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*conflictLedger.ListByUser").
			Int64("user_id", userID).
			Msg("failed to execute conflict list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	conflicts := make([]models.SyncConflict, 0, 20)

	for rows.Next() {
		conflict, scanErr := scanConflict(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*conflictLedger.ListByUser").
				Int64("user_id", userID).
				Msg("failed to scan conflict row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		conflicts = append(conflicts, conflict)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*conflictLedger.ListByUser").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return conflicts, nil
}

// PurgeResolvedBefore implements [ConflictLedger].
func (l *conflictLedger) PurgeResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, purgeResolvedConflicts, cutoff)
	if err != nil {
		log.Err(err).
			Str("func", "*conflictLedger.PurgeResolvedBefore").
			Time("cutoff", cutoff).
			Msg("failed to purge resolved conflicts")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return purged, nil
}

// checkTransition classifies a zero-row status transition: either the ledger
// row does not exist, or it is no longer pending.
func (l *conflictLedger) checkTransition(ctx context.Context, result sql.Result, conflictID string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	if err = l.DB.QueryRowContext(ctx, conflictExists, conflictID).Scan(&exists); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if !exists {
		return ErrConflictNotFound
	}

	return ErrConflictNotPending
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan code.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanConflict(row rowScanner) (models.SyncConflict, error) {
	var (
		conflict       models.SyncConflict
		clientData     []byte
		serverData     []byte
		resolutionData []byte
		resolvedBy     sql.NullString
	)

	err := row.Scan(
		&conflict.ConflictID,
		&conflict.UserID,
		&conflict.DeviceID,
		&conflict.EntityType,
		&conflict.EntityID,
		&conflict.ConflictType,
		&clientData,
		&serverData,
		&conflict.ResolutionStrategy,
		&resolutionData,
		&conflict.ConflictStatus,
		&conflict.ClientModifiedAt,
		&conflict.ServerModifiedAt,
		&conflict.DetectedAt,
		&conflict.ResolvedAt,
		&resolvedBy,
	)
	if err != nil {
		return models.SyncConflict{}, err
	}

	conflict.ClientData = clientData
	conflict.ServerData = serverData
	conflict.ResolutionData = resolutionData
	conflict.ResolvedBy = resolvedBy.String

	return conflict, nil
}

func nullableBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
