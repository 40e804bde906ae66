package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/store"
	"github.com/kotobadev/kotoba-sync/models"
)

// ListConflicts implements [SyncService].
func (s *syncService) ListConflicts(ctx context.Context, userID int64, status models.ConflictStatus, limit uint64) ([]models.SyncConflict, error) {
	if userID <= 0 {
		return nil, ErrInvalidDataProvided
	}

	conflicts, err := s.ledger.ListByUser(ctx, userID, status, limit)
	if err != nil {
		return nil, fmt.Errorf("listing conflicts: %w", err)
	}

	return conflicts, nil
}

// ResolveConflict implements [SyncService]. The chosen payload is committed
// through the same conditional-write path the engine uses, at the entity's
// current version; a lost race is retried once against the fresh version.
func (s *syncService) ResolveConflict(ctx context.Context, userID int64, conflictID string, chosenData []byte, resolvedBy string) error {
	log := logger.FromContext(ctx)

	if len(chosenData) == 0 {
		return ErrInvalidDataProvided
	}

	conflict, err := s.loadPendingConflict(ctx, userID, conflictID)
	if err != nil {
		return err
	}

	if err := s.commitChosenData(ctx, conflict, chosenData); err != nil {
		return err
	}

	if err := s.ledger.MarkResolved(ctx, conflictID, chosenData, resolvedBy); err != nil {
		if errors.Is(err, store.ErrConflictNotPending) {
			return ErrConflictNotResolvable
		}
		return fmt.Errorf("marking conflict resolved: %w", err)
	}

	log.Info().
		Str("conflict_id", conflictID).
		Str("resolved_by", resolvedBy).
		Msg("conflict resolved manually")

	return nil
}

// IgnoreConflict implements [SyncService].
func (s *syncService) IgnoreConflict(ctx context.Context, userID int64, conflictID string, resolvedBy string) error {
	if _, err := s.loadPendingConflict(ctx, userID, conflictID); err != nil {
		return err
	}

	if err := s.ledger.MarkIgnored(ctx, conflictID, resolvedBy); err != nil {
		if errors.Is(err, store.ErrConflictNotPending) {
			return ErrConflictNotResolvable
		}
		return fmt.Errorf("marking conflict ignored: %w", err)
	}

	return nil
}

// loadPendingConflict fetches a ledger row and checks ownership and state.
func (s *syncService) loadPendingConflict(ctx context.Context, userID int64, conflictID string) (models.SyncConflict, error) {
	conflict, err := s.ledger.Get(ctx, conflictID)
	if err != nil {
		return models.SyncConflict{}, fmt.Errorf("fetching conflict: %w", err)
	}

	// A user may only act on their own conflicts.
	if conflict.UserID != userID {
		return models.SyncConflict{}, store.ErrConflictNotFound
	}

	if conflict.ConflictStatus != models.ConflictStatusPending {
		return models.SyncConflict{}, ErrConflictNotResolvable
	}

	return conflict, nil
}

// commitChosenData writes the human-chosen payload over the conflicted
// entity at its current version, retrying once on a lost race.
func (s *syncService) commitChosenData(ctx context.Context, conflict models.SyncConflict, chosenData []byte) error {
	naturalKey, err := s.registry.NaturalKey(conflict.EntityType, chosenData)
	if err != nil {
		return fmt.Errorf("deriving natural key: %w", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		expected := models.NewEntityVersion

		current, err := s.entities.Get(ctx, conflict.EntityType, conflict.EntityID)
		switch {
		case errors.Is(err, store.ErrEntityNotFound):
			// Entity vanished; the chosen payload recreates it.
		case err != nil:
			return fmt.Errorf("reading current state: %w", err)
		default:
			expected = current.RowVersion
		}

		_, err = s.entities.ConditionallyPut(ctx, models.SyncEntity{
			EntityType: conflict.EntityType,
			EntityID:   conflict.EntityID,
			UserID:     conflict.UserID,
			Payload:    chosenData,
			NaturalKey: naturalKey,
		}, expected)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrVersionConflict) {
			return fmt.Errorf("committing chosen data: %w", err)
		}
	}

	return store.ErrVersionConflict
}
