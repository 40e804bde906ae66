package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/models"
)

type localEntityRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalEntityRepository constructs a [LocalEntityRepository] backed by the
// agent's SQLite database.
func NewLocalEntityRepository(db *DB, logger *logger.Logger) LocalEntityRepository {
	return &localEntityRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localEntityRepository) Upsert(ctx context.Context, entities ...models.UpsertEntity) error {
	log := logger.FromContext(ctx)

	for _, entity := range entities {
		_, err := l.DB.ExecContext(ctx, upsertLocalEntity,
			entity.EntityType,
			entity.EntityID,
			string(entity.Payload),
			entity.RowVersion,
			entity.UpdatedAt,
		)
		if err != nil {
			log.Err(err).
				Str("func", "localEntityRepository.Upsert").
				Str("entity_type", entity.EntityType).
				Int64("entity_id", entity.EntityID).
				Msg("failed to upsert local entity")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

func (l *localEntityRepository) MarkDeleted(ctx context.Context, keys ...models.EntityKey) error {
	log := logger.FromContext(ctx)

	for _, key := range keys {
		_, err := l.DB.ExecContext(ctx, markLocalEntityDeleted, key.EntityType, key.EntityID)
		if err != nil {
			log.Err(err).
				Str("func", "localEntityRepository.MarkDeleted").
				Str("entity_type", key.EntityType).
				Int64("entity_id", key.EntityID).
				Msg("failed to mark local entity deleted")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

func (l *localEntityRepository) Get(ctx context.Context, entityType string, entityID int64) (models.LocalEntity, error) {
	log := logger.FromContext(ctx)

	var entity models.LocalEntity
	var payload string

	row := l.DB.QueryRowContext(ctx, getLocalEntity, entityType, entityID)
	err := row.Scan(
		&entity.EntityType,
		&entity.EntityID,
		&payload,
		&entity.RowVersion,
		&entity.UpdatedAt,
		&entity.IsDeleted,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LocalEntity{}, ErrEntityNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.Get").
			Str("entity_type", entityType).
			Int64("entity_id", entityID).
			Msg("failed to scan local entity row")
		return models.LocalEntity{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	entity.Payload = []byte(payload)
	return entity, nil
}

func (l *localEntityRepository) ListActive(ctx context.Context, entityType string) ([]models.LocalEntity, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, listActiveLocalEntities, entityType)
	if err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.ListActive").
			Str("entity_type", entityType).
			Msg("failed to query local entities")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entities []models.LocalEntity
	for rows.Next() {
		var entity models.LocalEntity
		var payload string

		if err := rows.Scan(
			&entity.EntityType,
			&entity.EntityID,
			&payload,
			&entity.RowVersion,
			&entity.UpdatedAt,
			&entity.IsDeleted,
		); err != nil {
			log.Err(err).
				Str("func", "localEntityRepository.ListActive").
				Msg("failed to scan local entity row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		entity.Payload = []byte(payload)
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entities, nil
}

func (l *localEntityRepository) NextLocalID(ctx context.Context, entityType string) (int64, error) {
	log := logger.FromContext(ctx)

	var next int64
	if err := l.DB.QueryRowContext(ctx, nextLocalEntityID, entityType).Scan(&next); err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.NextLocalID").
			Str("entity_type", entityType).
			Msg("failed to compute next local entity id")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return next, nil
}
