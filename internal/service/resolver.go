package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/store"
	"github.com/kotobadev/kotoba-sync/internal/utils"
	"github.com/kotobadev/kotoba-sync/models"
)

// autoResolver is the ResolvedBy identity recorded for engine decisions.
const autoResolver = "auto"

// resolutionOutcome is what one conflict resolution produced.
type resolutionOutcome struct {
	// upsert is the entity the client must overwrite its local copy with:
	// the surviving server state for ServerWins, or the newly committed
	// state for ClientWins and Merge. Nil for Manual.
	upsert *models.UpsertEntity

	// deleted is set when the resolution committed a deletion.
	deleted *models.EntityKey

	// pending is set when the conflict was parked for manual resolution.
	pending *models.PendingConflictInfo

	// resolved reports whether the engine settled the conflict
	// automatically.
	resolved bool
}

// strategyConfig selects the resolution strategy per entity type.
type strategyConfig struct {
	defaultStrategy models.ResolutionStrategy
	perType         map[string]models.ResolutionStrategy
}

func (c strategyConfig) forType(entityType string) models.ResolutionStrategy {
	if s, ok := c.perType[entityType]; ok {
		return s
	}
	return c.defaultStrategy
}

// resolutionEngine settles conflicting changes. Every conflict the detector
// finds is recorded in the ledger, whether or not the engine resolves it in
// the same session.
type resolutionEngine struct {
	entities store.VersionedStore
	ledger   store.ConflictLedger
	registry *EntityRegistry
	strategy strategyConfig
	uuids    *utils.UUIDGenerator
	logger   *logger.Logger
}

func newResolutionEngine(
	entities store.VersionedStore,
	ledger store.ConflictLedger,
	registry *EntityRegistry,
	strategy strategyConfig,
	logger *logger.Logger,
) *resolutionEngine {
	return &resolutionEngine{
		entities: entities,
		ledger:   ledger,
		registry: registry,
		strategy: strategy,
		uuids:    utils.NewUUIDGenerator(),
		logger:   logger,
	}
}

// Resolve settles one conflicting detection for the given session and writes
// the ledger row recording the outcome.
func (e *resolutionEngine) Resolve(ctx context.Context, userID int64, deviceID string, det detection) (resolutionOutcome, error) {
	log := logger.FromContext(ctx)

	strategy := e.strategy.forType(det.change.EntityType)

	if strategy == models.ResolutionMerge && e.registry.Merge(det.change.EntityType) == nil {
		log.Warn().
			Str("entity_type", det.change.EntityType).
			Msg("merge strategy configured but no merge function registered, falling back to server wins")
		strategy = models.ResolutionServerWins
	}

	outcome, resolutionData, err := e.apply(ctx, strategy, userID, det)
	if err != nil {
		return resolutionOutcome{}, err
	}
	if outcome.pending != nil {
		// A double race under ClientWins or Merge escalates to Manual.
		strategy = models.ResolutionManual
	}

	conflict, err := e.appendLedgerRow(ctx, userID, deviceID, det, strategy, resolutionData)
	if err != nil {
		return resolutionOutcome{}, err
	}

	if outcome.pending != nil {
		outcome.pending.ConflictID = conflict.ConflictID
	}

	return outcome, nil
}

// apply executes the strategy. It returns the outcome plus the resolution
// payload for the ledger (nil when the conflict stays pending).
func (e *resolutionEngine) apply(ctx context.Context, strategy models.ResolutionStrategy, userID int64, det detection) (resolutionOutcome, json.RawMessage, error) {
	switch strategy {
	case models.ResolutionServerWins:
		return e.applyServerWins(det)

	case models.ResolutionClientWins:
		return e.applyOverride(ctx, userID, det, nil)

	case models.ResolutionMerge:
		return e.applyOverride(ctx, userID, det, e.registry.Merge(det.change.EntityType))

	default: // models.ResolutionManual
		return e.parkForManual(det), nil, nil
	}
}

// applyServerWins discards the client payload; the client receives the
// current server entity back so it can overwrite its local copy. Nothing is
// written to the entity store.
func (e *resolutionEngine) applyServerWins(det detection) (resolutionOutcome, json.RawMessage, error) {
	outcome := resolutionOutcome{resolved: true}

	if !det.hasServer || det.server.IsDeleted {
		// The server side of the conflict is a deletion; the client must
		// drop its local copy.
		key := det.change.Key()
		if det.hasServer {
			key = det.server.Key()
		}
		outcome.deleted = &key
		return outcome, nil, nil
	}

	outcome.upsert = &models.UpsertEntity{
		EntityType: det.server.EntityType,
		EntityID:   det.server.EntityID,
		Payload:    det.server.Payload,
		RowVersion: det.server.RowVersion,
		UpdatedAt:  det.server.UpdatedAt,
	}

	return outcome, det.server.Payload, nil
}

// applyOverride force-commits the client's side (ClientWins) or the merged
// payload (Merge, when merge is non-nil). The write targets the server row
// the conflict was detected against, at the version read immediately before
// the write. If the write loses a second race the conflict escalates to
// Manual rather than being dropped.
func (e *resolutionEngine) applyOverride(ctx context.Context, userID int64, det detection, merge MergeFunc) (resolutionOutcome, json.RawMessage, error) {
	target := det.change.Key()
	if det.hasServer {
		target = det.server.Key()
	}

	server := det.server
	hasServer := det.hasServer

	for attempt := 0; attempt < 2; attempt++ {
		payload := det.change.Payload
		// A delete carries no payload to merge; the deletion itself is the
		// client's side, committed as a soft delete below.
		if merge != nil && hasServer && det.change.Operation != models.OperationDelete {
			merged, err := merge(det.change.Payload, server.Payload)
			if err != nil {
				return resolutionOutcome{}, nil, fmt.Errorf("merging payloads: %w", err)
			}
			payload = merged
		}

		newVersion, err := e.commitOverride(ctx, userID, det.change, target, payload, server, hasServer)
		switch {
		case err == nil:
			if det.change.Operation == models.OperationDelete {
				return resolutionOutcome{resolved: true, deleted: &target}, nil, nil
			}
			return resolutionOutcome{
				resolved: true,
				upsert: &models.UpsertEntity{
					EntityType: target.EntityType,
					EntityID:   target.EntityID,
					Payload:    payload,
					RowVersion: newVersion,
					UpdatedAt:  time.Now().UTC(),
				},
			}, payload, nil

		case errors.Is(err, store.ErrVersionConflict):
			if attempt == 1 {
				// The retry lost too; no further write will be attempted.
				continue
			}

			// Lost the race. Re-read and retry once.
			current, getErr := e.entities.Get(ctx, target.EntityType, target.EntityID)
			switch {
			case errors.Is(getErr, store.ErrEntityNotFound):
				hasServer = false
			case getErr != nil:
				return resolutionOutcome{}, nil, fmt.Errorf("re-reading server state: %w", getErr)
			default:
				server = current
				hasServer = true
			}

		case errors.Is(err, store.ErrEntityNotFound):
			hasServer = false

		default:
			return resolutionOutcome{}, nil, fmt.Errorf("committing resolution: %w", err)
		}
	}

	// Raced twice: never silently drop, park for a human decision.
	return e.parkForManual(det), nil, nil
}

// commitOverride performs one conditional write of the override payload.
func (e *resolutionEngine) commitOverride(ctx context.Context, userID int64, change models.PendingChange, target models.EntityKey, payload json.RawMessage, server models.SyncEntity, hasServer bool) (int64, error) {
	expected := models.NewEntityVersion
	if hasServer {
		expected = server.RowVersion
	}

	if change.Operation == models.OperationDelete {
		return e.entities.SoftDelete(ctx, target.EntityType, target.EntityID, expected, autoResolver)
	}

	naturalKey, err := e.registry.NaturalKey(target.EntityType, payload)
	if err != nil {
		return 0, fmt.Errorf("deriving natural key: %w", err)
	}

	return e.entities.ConditionallyPut(ctx, models.SyncEntity{
		EntityType: target.EntityType,
		EntityID:   target.EntityID,
		UserID:     userID,
		Payload:    payload,
		NaturalKey: naturalKey,
	}, expected)
}

func (e *resolutionEngine) parkForManual(det detection) resolutionOutcome {
	key := det.change.Key()
	if det.hasServer {
		key = det.server.Key()
	}

	info := &models.PendingConflictInfo{
		EntityType: key.EntityType,
		EntityID:   key.EntityID,
		ClientData: det.change.Payload,
	}
	if det.hasServer {
		info.ServerData = det.server.Payload
	}

	return resolutionOutcome{pending: info}
}

// appendLedgerRow writes the audit record for one conflict occurrence.
func (e *resolutionEngine) appendLedgerRow(
	ctx context.Context,
	userID int64,
	deviceID string,
	det detection,
	strategy models.ResolutionStrategy,
	resolutionData json.RawMessage,
) (models.SyncConflict, error) {
	now := time.Now().UTC()

	conflict := models.SyncConflict{
		ConflictID:         e.uuids.Generate(),
		UserID:             userID,
		DeviceID:           deviceID,
		EntityType:         det.change.EntityType,
		EntityID:           det.change.EntityID,
		ConflictType:       conflictTypeOf(det.change.Operation),
		ClientData:         det.change.Payload,
		ResolutionStrategy: strategy,
		ResolutionData:     resolutionData,
		ClientModifiedAt:   det.change.ClientModifiedAt,
		DetectedAt:         now,
	}

	if det.hasServer {
		conflict.EntityType = det.server.EntityType
		conflict.EntityID = det.server.EntityID
		conflict.ServerData = det.server.Payload
		conflict.ServerModifiedAt = det.server.UpdatedAt
	}

	if strategy == models.ResolutionManual {
		conflict.ConflictStatus = models.ConflictStatusPending
	} else {
		conflict.ConflictStatus = models.ConflictStatusResolved
		conflict.ResolvedAt = &now
		conflict.ResolvedBy = autoResolver
	}

	if err := e.ledger.Append(ctx, conflict); err != nil {
		return models.SyncConflict{}, fmt.Errorf("appending conflict ledger row: %w", err)
	}

	return conflict, nil
}

func conflictTypeOf(op models.Operation) models.ConflictType {
	switch op {
	case models.OperationCreate:
		return models.ConflictTypeCreate
	case models.OperationDelete:
		return models.ConflictTypeDelete
	default:
		return models.ConflictTypeUpdate
	}
}
