package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/models"
)

// versionedStore is the PostgreSQL-backed implementation of [VersionedStore].
// It executes all entity reads and conditional writes against the
// "sync_entities" table using the embedded [*DB] connection.
//
// Every conditional write is a single SQL statement whose WHERE clause
// carries the version check, so the check and the mutation are indivisible
// at the storage layer: two writers can never both succeed from the same
// observed version.
type versionedStore struct {
	*DB
	logger *logger.Logger
}

// NewVersionedStore constructs a [VersionedStore] backed by the provided
// database connection and logger.
func NewVersionedStore(db *DB, logger *logger.Logger) VersionedStore {
	logger.Debug().Msg("creating versioned store")
	return &versionedStore{
		DB:     db,
		logger: logger,
	}
}

// Get implements [VersionedStore]. Soft-deleted rows are returned with
// IsDeleted set; the conflict detector needs to see them.
func (s *versionedStore) Get(ctx context.Context, entityType string, entityID int64) (models.SyncEntity, error) {
	log := logger.FromContext(ctx)

	var entity models.SyncEntity
	row := s.DB.QueryRowContext(ctx, getEntity, entityType, entityID)

	err := row.Scan(
		&entity.EntityType,
		&entity.EntityID,
		&entity.UserID,
		&entity.Payload,
		&entity.RowVersion,
		&entity.NaturalKey,
		&entity.UpdatedAt,
		&entity.IsDeleted,
		&entity.DeletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncEntity{}, ErrEntityNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*versionedStore.Get").
			Str("entity_type", entityType).
			Int64("entity_id", entityID).
			Msg("failed to scan entity row")
		return models.SyncEntity{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entity, nil
}

// FindByNaturalKey implements [VersionedStore].
func (s *versionedStore) FindByNaturalKey(ctx context.Context, entityType string, userID int64, naturalKey string) (models.SyncEntity, error) {
	log := logger.FromContext(ctx)

	var entity models.SyncEntity
	row := s.DB.QueryRowContext(ctx, findEntityByNaturalKey, entityType, userID, naturalKey)

	err := row.Scan(
		&entity.EntityType,
		&entity.EntityID,
		&entity.UserID,
		&entity.Payload,
		&entity.RowVersion,
		&entity.NaturalKey,
		&entity.UpdatedAt,
		&entity.IsDeleted,
		&entity.DeletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncEntity{}, ErrEntityNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*versionedStore.FindByNaturalKey").
			Str("entity_type", entityType).
			Int64("user_id", userID).
			Msg("failed to scan entity row")
		return models.SyncEntity{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entity, nil
}

// ConditionallyPut implements [VersionedStore].
func (s *versionedStore) ConditionallyPut(ctx context.Context, entity models.SyncEntity, expectedVersion int64) (int64, error) {
	if expectedVersion == models.NewEntityVersion {
		return s.insert(ctx, entity)
	}
	return s.update(ctx, entity, expectedVersion)
}

// insert creates a brand-new row. The primary-key ON CONFLICT clause settles
// races between concurrent creates of the same key: the loser gets no row
// back and reports a version conflict.
func (s *versionedStore) insert(ctx context.Context, entity models.SyncEntity) (int64, error) {
	log := logger.FromContext(ctx)

	var newVersion int64
	var updatedAt time.Time

	row := s.DB.QueryRowContext(ctx, insertEntity,
		entity.EntityType, entity.EntityID, entity.UserID, entity.Payload, entity.NaturalKey)

	err := row.Scan(&newVersion, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Row already exists: another device created this key first.
		return 0, ErrVersionConflict
	}
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return 0, ErrDuplicateNaturalKey
		}
		log.Err(err).
			Str("func", "*versionedStore.insert").
			Str("entity_type", entity.EntityType).
			Int64("entity_id", entity.EntityID).
			Msg("failed to insert entity")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return newVersion, nil
}

// update performs the conditional overwrite. Zero affected rows is
// disambiguated with a follow-up version probe: missing row vs. stale
// expected version.
func (s *versionedStore) update(ctx context.Context, entity models.SyncEntity, expectedVersion int64) (int64, error) {
	log := logger.FromContext(ctx)

	var newVersion int64
	var updatedAt time.Time

	row := s.DB.QueryRowContext(ctx, updateEntityCAS,
		entity.Payload, entity.NaturalKey, entity.EntityType, entity.EntityID, expectedVersion)

	err := row.Scan(&newVersion, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, s.classifyMissedWrite(ctx, entity.EntityType, entity.EntityID)
	}
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return 0, ErrDuplicateNaturalKey
		}
		log.Err(err).
			Str("func", "*versionedStore.update").
			Str("entity_type", entity.EntityType).
			Int64("entity_id", entity.EntityID).
			Int64("expected_version", expectedVersion).
			Msg("failed to execute conditional update")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return newVersion, nil
}

// SoftDelete implements [VersionedStore]. The delete mark and the tombstone
// are written in one transaction so no device can observe one without the
// other.
func (s *versionedStore) SoftDelete(ctx context.Context, entityType string, entityID int64, expectedVersion int64, deletedBy string) (int64, error) {
	log := logger.FromContext(ctx)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*versionedStore.SoftDelete").Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var userID, newVersion int64
	var deletedAt time.Time

	row := tx.QueryRowContext(ctx, softDeleteEntity, entityType, entityID, expectedVersion)

	err = row.Scan(&userID, &newVersion, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, s.classifyMissedWrite(ctx, entityType, entityID)
	}
	if err != nil {
		log.Err(err).
			Str("func", "*versionedStore.SoftDelete").
			Str("entity_type", entityType).
			Int64("entity_id", entityID).
			Msg("failed to execute soft delete")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, insertTombstone, entityType, entityID, userID, deletedAt, deletedBy); err != nil {
		log.Err(err).
			Str("func", "*versionedStore.SoftDelete").
			Str("entity_type", entityType).
			Int64("entity_id", entityID).
			Msg("failed to record tombstone")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*versionedStore.SoftDelete").Msg("failed to commit transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	return newVersion, nil
}

// ListModifiedSince implements [VersionedStore].
func (s *versionedStore) ListModifiedSince(ctx context.Context, userID int64, since *time.Time) ([]models.SyncEntity, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListModifiedSinceQuery(userID, since)
	if err != nil {
		log.Err(err).
			Str("func", "*versionedStore.ListModifiedSince").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*versionedStore.ListModifiedSince").
			Int64("user_id", userID).
			Msg("failed to execute modified-since query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entities := make([]models.SyncEntity, 0, 50)

	for rows.Next() {
		var entity models.SyncEntity

		scanErr := rows.Scan(
			&entity.EntityType,
			&entity.EntityID,
			&entity.UserID,
			&entity.Payload,
			&entity.RowVersion,
			&entity.NaturalKey,
			&entity.UpdatedAt,
			&entity.IsDeleted,
			&entity.DeletedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*versionedStore.ListModifiedSince").
				Int64("user_id", userID).
				Msg("failed to scan entity row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		entities = append(entities, entity)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*versionedStore.ListModifiedSince").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entities, nil
}

// classifyMissedWrite turns a zero-row conditional write into the precise
// sentinel: the row is either gone or carries a different version.
func (s *versionedStore) classifyMissedWrite(ctx context.Context, entityType string, entityID int64) error {
	var currentVersion int64

	err := s.DB.QueryRowContext(ctx, getEntityVersion, entityType, entityID).Scan(&currentVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEntityNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return ErrVersionConflict
}
