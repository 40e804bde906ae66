package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/store"
	"github.com/kotobadev/kotoba-sync/models"
)

// conflictClass is the detector's verdict for one effective change.
type conflictClass int

const (
	// classClean means the client acted on the latest server state; the
	// change commits directly.
	classClean conflictClass = iota

	// classConflicting means another device modified the entity since this
	// client last saw it; the change goes to the resolution engine.
	classConflicting

	// classStale means the target entity is already gone; the change is a
	// no-op reported as skipped.
	classStale
)

// Skip reasons reported for stale changes.
const (
	skipReasonAlreadyGone    = "EntityAlreadyGone"
	skipReasonAlreadyDeleted = "EntityAlreadyDeleted"
	skipReasonAlreadyApplied = "AlreadyApplied"
)

// detection is the full context the detector hands to the next stage: the
// change, its class, and the server state it was compared against.
type detection struct {
	change models.PendingChange
	class  conflictClass

	// server is the current server row; valid only when hasServer is true.
	server    models.SyncEntity
	hasServer bool

	// skipReason is set for classStale.
	skipReason string
}

// conflictDetector classifies each effective change against current server
// state. Version comparison is the authority; timestamps are recorded for the
// ledger but never drive the verdict.
type conflictDetector struct {
	entities store.VersionedStore
	registry *EntityRegistry
	logger   *logger.Logger
}

func newConflictDetector(entities store.VersionedStore, registry *EntityRegistry, logger *logger.Logger) *conflictDetector {
	return &conflictDetector{
		entities: entities,
		registry: registry,
		logger:   logger,
	}
}

// Detect classifies one change for the given user.
func (d *conflictDetector) Detect(ctx context.Context, userID int64, change models.PendingChange) (detection, error) {
	current, err := d.entities.Get(ctx, change.EntityType, change.EntityID)
	switch {
	case errors.Is(err, store.ErrEntityNotFound):
		return d.detectAgainstMissing(ctx, userID, change)
	case err != nil:
		return detection{}, fmt.Errorf("fetching server state: %w", err)
	}

	return d.detectAgainstCurrent(change, current), nil
}

// detectAgainstMissing handles the no-server-row case: creates are clean
// pending a natural-key duplicate check, updates and deletes are stale.
func (d *conflictDetector) detectAgainstMissing(ctx context.Context, userID int64, change models.PendingChange) (detection, error) {
	if change.Operation != models.OperationCreate {
		return detection{
			change:     change,
			class:      classStale,
			skipReason: skipReasonAlreadyGone,
		}, nil
	}

	// A create may still collide with an existing live row under the same
	// natural key (e.g. the same vocabulary term created on two devices).
	naturalKey, err := d.registry.NaturalKey(change.EntityType, change.Payload)
	if err != nil {
		return detection{}, fmt.Errorf("deriving natural key: %w", err)
	}
	if naturalKey == "" {
		return detection{change: change, class: classClean}, nil
	}

	duplicate, err := d.entities.FindByNaturalKey(ctx, change.EntityType, userID, naturalKey)
	switch {
	case errors.Is(err, store.ErrEntityNotFound):
		return detection{change: change, class: classClean}, nil
	case err != nil:
		return detection{}, fmt.Errorf("checking natural key: %w", err)
	}

	if payloadsEquivalent(change.Payload, duplicate.Payload) {
		// Identical resubmission of an already-committed create: a no-op,
		// not a duplicate.
		return detection{
			change:     change,
			class:      classStale,
			server:     duplicate,
			hasServer:  true,
			skipReason: skipReasonAlreadyApplied,
		}, nil
	}

	return detection{
		change:    change,
		class:     classConflicting,
		server:    duplicate,
		hasServer: true,
	}, nil
}

// detectAgainstCurrent classifies a change against an existing server row.
// Version comparison alone decides: any mismatch against a live row means
// another session advanced the entity since this client last observed it.
func (d *conflictDetector) detectAgainstCurrent(change models.PendingChange, current models.SyncEntity) detection {
	if change.Operation == models.OperationCreate {
		if current.IsDeleted {
			// The id was created and deleted before; the client never knew.
			// Treat the create as clean and resurrect over the tombstoned
			// row at its current version.
			return detection{
				change:    change,
				class:     classClean,
				server:    current,
				hasServer: true,
			}
		}
		// An id collision with a live row means two devices invented the
		// same identity concurrently.
		return detection{
			change:    change,
			class:     classConflicting,
			server:    current,
			hasServer: true,
		}
	}

	if change.Operation == models.OperationDelete && current.IsDeleted {
		return detection{
			change:     change,
			class:      classStale,
			server:     current,
			hasServer:  true,
			skipReason: skipReasonAlreadyDeleted,
		}
	}

	if change.ClientRowVersion == current.RowVersion {
		return detection{
			change:    change,
			class:     classClean,
			server:    current,
			hasServer: true,
		}
	}

	if change.Operation == models.OperationUpdate && !current.IsDeleted &&
		payloadsEquivalent(change.Payload, current.Payload) {
		// The server already holds exactly this state, typically because the
		// same request was retried after a successful sync. Re-submitting it
		// must not raise a conflict.
		return detection{
			change:     change,
			class:      classStale,
			server:     current,
			hasServer:  true,
			skipReason: skipReasonAlreadyApplied,
		}
	}

	return detection{
		change:    change,
		class:     classConflicting,
		server:    current,
		hasServer: true,
	}
}

// payloadsEquivalent reports whether two serialized payloads decode to the
// same value, ignoring formatting and key order.
func payloadsEquivalent(a, b json.RawMessage) bool {
	var av, bv any
	if json.Unmarshal(a, &av) != nil || json.Unmarshal(b, &bv) != nil {
		return false
	}
	return reflect.DeepEqual(av, bv)
}
