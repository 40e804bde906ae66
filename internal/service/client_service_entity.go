package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/store"
	"github.com/kotobadev/kotoba-sync/models"
)

type agentEntityService struct {
	entities store.LocalEntityRepository
	queue    store.PendingChangeQueue
	registry *EntityRegistry

	logger *logger.Logger
}

// NewAgentEntityService creates the agent-side entity service. Writes go to
// the local mirror and the pending-change queue in the same call; the sync
// session pushes them to the server later.
func NewAgentEntityService(storages *store.ClientStorages, registry *EntityRegistry, logger *logger.Logger) AgentEntityService {
	return &agentEntityService{
		entities: storages.Entities,
		queue:    storages.Queue,
		registry: registry,
		logger:   logger,
	}
}

func (s *agentEntityService) Create(ctx context.Context, entityType string, payload json.RawMessage) (models.LocalEntity, error) {
	if err := s.validate(entityType, payload); err != nil {
		return models.LocalEntity{}, err
	}

	entityID, err := s.entities.NextLocalID(ctx, entityType)
	if err != nil {
		return models.LocalEntity{}, fmt.Errorf("assign local entity id: %w", err)
	}

	now := time.Now().UTC()
	entity := models.LocalEntity{
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    payload,
		RowVersion: models.NewEntityVersion,
		UpdatedAt:  now,
	}

	if err := s.entities.Upsert(ctx, models.UpsertEntity{
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    payload,
		RowVersion: models.NewEntityVersion,
		UpdatedAt:  now,
	}); err != nil {
		return models.LocalEntity{}, fmt.Errorf("store local entity: %w", err)
	}

	if err := s.queue.Enqueue(ctx, models.PendingChange{
		EntityType:       entityType,
		EntityID:         entityID,
		Operation:        models.OperationCreate,
		Payload:          payload,
		ClientRowVersion: models.NewEntityVersion,
		ClientModifiedAt: now,
	}); err != nil {
		return models.LocalEntity{}, fmt.Errorf("queue create change: %w", err)
	}

	return entity, nil
}

func (s *agentEntityService) Update(ctx context.Context, entityType string, entityID int64, payload json.RawMessage) error {
	if err := s.validate(entityType, payload); err != nil {
		return err
	}

	current, err := s.entities.Get(ctx, entityType, entityID)
	if err != nil {
		return fmt.Errorf("load local entity: %w", err)
	}
	if current.IsDeleted {
		return store.ErrEntityNotFound
	}

	now := time.Now().UTC()
	if err := s.entities.Upsert(ctx, models.UpsertEntity{
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    payload,
		RowVersion: current.RowVersion,
		UpdatedAt:  now,
	}); err != nil {
		return fmt.Errorf("store local entity: %w", err)
	}

	if err := s.queue.Enqueue(ctx, models.PendingChange{
		EntityType:       entityType,
		EntityID:         entityID,
		Operation:        models.OperationUpdate,
		Payload:          payload,
		ClientRowVersion: current.RowVersion,
		ClientModifiedAt: now,
	}); err != nil {
		return fmt.Errorf("queue update change: %w", err)
	}

	return nil
}

func (s *agentEntityService) Delete(ctx context.Context, entityType string, entityID int64) error {
	if !s.registry.Known(entityType) {
		return ErrInvalidDataProvided
	}

	current, err := s.entities.Get(ctx, entityType, entityID)
	if err != nil {
		return fmt.Errorf("load local entity: %w", err)
	}
	if current.IsDeleted {
		return store.ErrEntityNotFound
	}

	if err := s.entities.MarkDeleted(ctx, models.EntityKey{EntityType: entityType, EntityID: entityID}); err != nil {
		return fmt.Errorf("mark local entity deleted: %w", err)
	}

	if err := s.queue.Enqueue(ctx, models.PendingChange{
		EntityType:       entityType,
		EntityID:         entityID,
		Operation:        models.OperationDelete,
		ClientRowVersion: current.RowVersion,
		ClientModifiedAt: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("queue delete change: %w", err)
	}

	return nil
}

func (s *agentEntityService) Get(ctx context.Context, entityType string, entityID int64) (models.LocalEntity, error) {
	if !s.registry.Known(entityType) {
		return models.LocalEntity{}, ErrInvalidDataProvided
	}
	return s.entities.Get(ctx, entityType, entityID)
}

func (s *agentEntityService) List(ctx context.Context, entityType string) ([]models.LocalEntity, error) {
	if !s.registry.Known(entityType) {
		return nil, ErrInvalidDataProvided
	}
	return s.entities.ListActive(ctx, entityType)
}

func (s *agentEntityService) validate(entityType string, payload json.RawMessage) error {
	if !s.registry.Known(entityType) {
		return ErrInvalidDataProvided
	}
	if len(payload) == 0 || !json.Valid(payload) {
		return ErrInvalidDataProvided
	}
	return nil
}
