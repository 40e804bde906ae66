package service

import (
	"context"
	"errors"

	"github.com/kotobadev/kotoba-sync/internal/validators"
	"github.com/kotobadev/kotoba-sync/models"
)

// ChangeSet is the deduplicated result of folding one client's raw pending
// changes: at most one effective change per entity key, in first-arrival
// order, plus the per-item rejections collected along the way.
type ChangeSet struct {
	// Effective holds the surviving change per key, ordered by the first
	// arrival of that key in the raw batch.
	Effective []models.PendingChange

	// Rejected reports every dropped change with its reason. Rejections are
	// per-item and never fail the batch.
	Rejected []models.RejectedChange
}

// changeSetBuilder folds a raw arrival-ordered pending-change list into a
// ChangeSet. Later operations on the same key supersede earlier ones, except
// that a delete always survives any later create or update for the same key:
// a client cannot resurrect an entity it deleted within one offline session.
type changeSetBuilder struct {
	registry  *EntityRegistry
	validator validators.Validator
}

func newChangeSetBuilder(registry *EntityRegistry, validator validators.Validator) *changeSetBuilder {
	return &changeSetBuilder{
		registry:  registry,
		validator: validator,
	}
}

// Build folds the raw list. Malformed entries and unknown entity types are
// dropped and reported; everything else is folded by key.
func (b *changeSetBuilder) Build(ctx context.Context, raw []models.PendingChange) ChangeSet {
	var set ChangeSet

	index := make(map[models.EntityKey]int, len(raw))
	deleted := make(map[models.EntityKey]bool)

	for _, change := range raw {
		if reason := b.admit(ctx, change); reason != "" {
			set.Rejected = append(set.Rejected, models.RejectedChange{
				EntityType: change.EntityType,
				EntityID:   change.EntityID,
				Reason:     reason,
			})
			continue
		}

		key := change.Key()

		if deleted[key] {
			// Delete wins over anything later in the same batch.
			set.Rejected = append(set.Rejected, models.RejectedChange{
				EntityType: change.EntityType,
				EntityID:   change.EntityID,
				Reason:     models.RejectDeleteSupersededCreate,
			})
			continue
		}

		if change.Operation == models.OperationDelete {
			deleted[key] = true
		}

		if at, seen := index[key]; seen {
			set.Effective[at] = change
			continue
		}

		index[key] = len(set.Effective)
		set.Effective = append(set.Effective, change)
	}

	return set
}

// admit returns the rejection reason for a malformed change, or "" when the
// change is admissible.
func (b *changeSetBuilder) admit(ctx context.Context, change models.PendingChange) string {
	if !b.registry.Known(change.EntityType) {
		return models.RejectUnknownEntityType
	}

	err := b.validator.Validate(ctx, change)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, validators.ErrInvalidEntityID):
		return models.RejectMissingEntityID
	case errors.Is(err, validators.ErrInvalidOperation):
		return models.RejectUnknownOperation
	case errors.Is(err, validators.ErrEmptyPayload):
		return models.RejectMissingPayload
	case errors.Is(err, validators.ErrCreateHasVersion):
		return models.RejectCreateHasRowVersion
	case errors.Is(err, validators.ErrMissingRowVersion):
		return models.RejectMissingRowVersion
	default:
		return models.RejectUnknownOperation
	}
}
