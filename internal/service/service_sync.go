package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kotobadev/kotoba-sync/internal/config"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/store"
	"github.com/kotobadev/kotoba-sync/internal/validators"
	"github.com/kotobadev/kotoba-sync/models"
)

// syncService coordinates sync sessions. One session walks the sequence
// build change set, detect conflicts, resolve or defer them, commit, pull
// the server-side delta, and update the device checkpoint.
//
// Sessions for the same (user, device) are serialized by an advisory
// try-lock; sessions for different devices run concurrently and rely
// entirely on the versioned store's conditional writes for correctness.
type syncService struct {
	entities   store.VersionedStore
	metadata   store.SyncMetadataRepository
	ledger     store.ConflictLedger
	tombstones store.TombstoneRepository

	registry  *EntityRegistry
	builder   *changeSetBuilder
	detector  *conflictDetector
	engine    *resolutionEngine
	locks     *sessionLocks
	validator validators.Validator

	logger *logger.Logger
}

// NewSyncService wires the sync engine to the server storage layer and the
// resolution policy from cfg.
func NewSyncService(storages *store.Storages, cfg config.Sync, validator validators.Validator, logger *logger.Logger) (SyncService, error) {
	strategy, err := buildStrategyConfig(cfg)
	if err != nil {
		return nil, err
	}

	registry := NewEntityRegistry()

	return &syncService{
		entities:   storages.VersionedStore,
		metadata:   storages.Metadata,
		ledger:     storages.ConflictLedger,
		tombstones: storages.Tombstones,
		registry:   registry,
		builder:    newChangeSetBuilder(registry, validator),
		detector:   newConflictDetector(storages.VersionedStore, registry, logger),
		engine:     newResolutionEngine(storages.VersionedStore, storages.ConflictLedger, registry, strategy, logger),
		locks:      newSessionLocks(cfg.SessionLockTimeout),
		validator:  validator,
		logger:     logger,
	}, nil
}

func buildStrategyConfig(cfg config.Sync) (strategyConfig, error) {
	defaultStrategy := models.ResolutionStrategy(cfg.DefaultStrategy)
	if !defaultStrategy.Valid() {
		return strategyConfig{}, fmt.Errorf("%w: unknown default resolution strategy %q", ErrInvalidDataProvided, cfg.DefaultStrategy)
	}

	perType := make(map[string]models.ResolutionStrategy, len(cfg.Strategies))
	for entityType, name := range cfg.Strategies {
		s := models.ResolutionStrategy(name)
		if !s.Valid() {
			return strategyConfig{}, fmt.Errorf("%w: unknown resolution strategy %q for %q", ErrInvalidDataProvided, name, entityType)
		}
		perType[entityType] = s
	}

	return strategyConfig{defaultStrategy: defaultStrategy, perType: perType}, nil
}

// session carries the mutable state of one sync round.
type session struct {
	request  models.SyncRequest
	start    time.Time
	prior    *time.Time
	response models.SyncResponse
	status   models.SyncStatus

	// touched marks keys this session has already committed or resolved, so
	// the pull phase does not echo them back.
	touched map[models.EntityKey]bool

	committedAny bool
}

// Sync implements [SyncService].
func (s *syncService) Sync(ctx context.Context, request models.SyncRequest) (models.SyncResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request); err != nil {
		return models.SyncResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	token, err := s.locks.Acquire(request.UserID, request.DeviceID)
	if err != nil {
		return models.SyncResponse{}, err
	}
	defer func() {
		if releaseErr := s.locks.Release(request.UserID, request.DeviceID, token); releaseErr != nil {
			log.Warn().
				Int64("user_id", request.UserID).
				Str("device_id", request.DeviceID).
				Msg("session lock was taken over before release")
		}
	}()

	sess := &session{
		request: request,
		start:   time.Now().UTC(),
		status:  models.SyncStatusSuccess,
		touched: make(map[models.EntityKey]bool),
	}
	sess.response.ServerTime = sess.start

	priorMeta, err := s.loadMetadata(ctx, request)
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	sess.prior = checkpointOf(priorMeta, request)

	s.push(ctx, sess)

	if sess.status != models.SyncStatusFailed {
		if err := s.pull(ctx, sess); err != nil {
			log.Err(err).
				Int64("user_id", request.UserID).
				Str("device_id", request.DeviceID).
				Msg("pull phase failed")
			sess.status = models.SyncStatusFailed
		}
	}

	if sess.status == models.SyncStatusSuccess && len(sess.response.PendingConflicts) > 0 {
		sess.status = models.SyncStatusPartial
	}

	if err := s.updateMetadata(ctx, priorMeta, sess); err != nil {
		log.Err(err).
			Int64("user_id", request.UserID).
			Str("device_id", request.DeviceID).
			Msg("failed to update sync metadata")
		sess.status = models.SyncStatusFailed
	}

	sess.response.Status = sess.status
	sess.response.Success = sess.status == models.SyncStatusSuccess

	log.Info().
		Int64("user_id", request.UserID).
		Str("device_id", request.DeviceID).
		Str("status", string(sess.status)).
		Int("items_synced", sess.response.Stats.ItemsSynced).
		Int("conflicts_detected", sess.response.Stats.ConflictsDetected).
		Int("conflicts_resolved", sess.response.Stats.ConflictsResolved).
		Msg("sync session finished")

	return sess.response, nil
}

// push folds the raw pending changes and processes every effective change.
// Per-item version conflicts are expected and handled inline; only storage
// failures abort, leaving already-committed work in place.
func (s *syncService) push(ctx context.Context, sess *session) {
	log := logger.FromContext(ctx)

	set := s.builder.Build(ctx, sess.request.PendingChanges)
	sess.response.RejectedChanges = set.Rejected

	for _, change := range set.Effective {
		if ctx.Err() != nil {
			// Cancelled mid-batch. Once anything is committed the session
			// must still reach the metadata update; before that, stopping
			// early is harmless either way.
			sess.status = models.SyncStatusPartial
			return
		}

		if err := s.processChange(ctx, sess, change); err != nil {
			log.Err(err).
				Str("entity_type", change.EntityType).
				Int64("entity_id", change.EntityID).
				Msg("aborting session on storage error")
			sess.status = models.SyncStatusFailed
			return
		}
	}
}

// processChange runs one effective change through detection, commit, and
// (when needed) resolution.
func (s *syncService) processChange(ctx context.Context, sess *session, change models.PendingChange) error {
	det, err := s.detector.Detect(ctx, sess.request.UserID, change)
	if err != nil {
		return err
	}

	switch det.class {
	case classStale:
		sess.response.SkippedChanges = append(sess.response.SkippedChanges, models.SkippedChange{
			EntityType: change.EntityType,
			EntityID:   change.EntityID,
			Reason:     det.skipReason,
		})
		return nil

	case classConflicting:
		return s.resolve(ctx, sess, det)

	default:
		return s.commitClean(ctx, sess, det)
	}
}

// commitClean commits a clean change. A conditional-write failure here means
// another session slipped in between detection and commit; the change is
// re-detected once and routed through resolution like any other conflict.
func (s *syncService) commitClean(ctx context.Context, sess *session, det detection) error {
	change := det.change

	err := s.writeChange(ctx, sess, det)
	if err == nil {
		sess.markCommitted(change.Key())
		return nil
	}

	if errors.Is(err, store.ErrVersionConflict) || errors.Is(err, store.ErrDuplicateNaturalKey) || errors.Is(err, store.ErrEntityNotFound) {
		redet, detErr := s.detector.Detect(ctx, sess.request.UserID, change)
		if detErr != nil {
			return detErr
		}
		switch redet.class {
		case classStale:
			sess.response.SkippedChanges = append(sess.response.SkippedChanges, models.SkippedChange{
				EntityType: change.EntityType,
				EntityID:   change.EntityID,
				Reason:     redet.skipReason,
			})
			return nil
		case classClean:
			// Still clean after a lost race can only mean the interfering
			// write was reverted; treat as conflicting to avoid looping.
			redet.class = classConflicting
		}
		return s.resolve(ctx, sess, redet)
	}

	return err
}

// writeChange performs the conditional write for one clean change.
func (s *syncService) writeChange(ctx context.Context, sess *session, det detection) error {
	change := det.change

	if change.Operation == models.OperationDelete {
		_, err := s.entities.SoftDelete(ctx, change.EntityType, change.EntityID, change.ClientRowVersion, sess.request.DeviceID)
		return err
	}

	naturalKey, err := s.registry.NaturalKey(change.EntityType, change.Payload)
	if err != nil {
		return fmt.Errorf("deriving natural key: %w", err)
	}

	expected := change.ClientRowVersion
	if change.Operation == models.OperationCreate && det.hasServer {
		// Clean create over a soft-deleted row resurrects it at its
		// current version.
		expected = det.server.RowVersion
	}

	_, err = s.entities.ConditionallyPut(ctx, models.SyncEntity{
		EntityType: change.EntityType,
		EntityID:   change.EntityID,
		UserID:     sess.request.UserID,
		Payload:    change.Payload,
		NaturalKey: naturalKey,
	}, expected)

	return err
}

// resolve hands a conflicting detection to the resolution engine and folds
// the outcome into the session.
func (s *syncService) resolve(ctx context.Context, sess *session, det detection) error {
	sess.response.Stats.ConflictsDetected++

	outcome, err := s.engine.Resolve(ctx, sess.request.UserID, sess.request.DeviceID, det)
	if err != nil {
		return err
	}

	if outcome.resolved {
		sess.response.Stats.ConflictsResolved++
	}
	if outcome.upsert != nil {
		sess.response.UpsertEntities = append(sess.response.UpsertEntities, *outcome.upsert)
		sess.markCommitted(models.EntityKey{EntityType: outcome.upsert.EntityType, EntityID: outcome.upsert.EntityID})
	}
	if outcome.deleted != nil {
		sess.response.DeletedEntityIDs = append(sess.response.DeletedEntityIDs, *outcome.deleted)
		sess.markCommitted(*outcome.deleted)
	}
	if outcome.pending != nil {
		sess.response.PendingConflicts = append(sess.response.PendingConflicts, *outcome.pending)
		sess.touched[models.EntityKey{EntityType: outcome.pending.EntityType, EntityID: outcome.pending.EntityID}] = true
	}

	return nil
}

// pull collects the server-side delta since the device's checkpoint: entities
// modified by other sessions, plus tombstones for deletions. Keys this
// session already settled are not echoed back.
func (s *syncService) pull(ctx context.Context, sess *session) error {
	entities, err := s.entities.ListModifiedSince(ctx, sess.request.UserID, sess.prior)
	if err != nil {
		return fmt.Errorf("listing modified entities: %w", err)
	}

	deleted := make(map[models.EntityKey]bool)
	for _, key := range sess.response.DeletedEntityIDs {
		deleted[key] = true
	}

	for _, entity := range entities {
		key := entity.Key()
		if sess.touched[key] {
			continue
		}

		if entity.IsDeleted {
			if !deleted[key] {
				deleted[key] = true
				sess.response.DeletedEntityIDs = append(sess.response.DeletedEntityIDs, key)
			}
			continue
		}

		sess.response.UpsertEntities = append(sess.response.UpsertEntities, models.UpsertEntity{
			EntityType: entity.EntityType,
			EntityID:   entity.EntityID,
			Payload:    entity.Payload,
			RowVersion: entity.RowVersion,
			UpdatedAt:  entity.UpdatedAt,
		})
	}

	// Tombstones cover deletions whose soft-deleted rows were already purged.
	tombstones, err := s.tombstones.ListSince(ctx, sess.request.UserID, sess.prior)
	if err != nil {
		return fmt.Errorf("listing tombstones: %w", err)
	}
	for _, item := range tombstones {
		key := models.EntityKey{EntityType: item.EntityType, EntityID: item.EntityID}
		if sess.touched[key] || deleted[key] {
			continue
		}
		deleted[key] = true
		sess.response.DeletedEntityIDs = append(sess.response.DeletedEntityIDs, key)
	}

	return nil
}

// loadMetadata fetches the device's checkpoint row, or nil on first sync.
func (s *syncService) loadMetadata(ctx context.Context, request models.SyncRequest) (*models.SyncMetadata, error) {
	meta, err := s.metadata.Get(ctx, request.UserID, request.DeviceID)
	switch {
	case errors.Is(err, store.ErrMetadataNotFound):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return &meta, nil
}

// checkpointOf picks the pull baseline: the server-recorded checkpoint when
// one exists, otherwise whatever the client claims. Nil means full sync.
func checkpointOf(meta *models.SyncMetadata, request models.SyncRequest) *time.Time {
	if meta != nil && !meta.LastSyncTime.IsZero() {
		t := meta.LastSyncTime
		return &t
	}
	return request.LastSyncTime
}

// updateMetadata moves the device checkpoint forward and accumulates the
// session counters. The checkpoint is the session start time, so changes
// landing mid-session are picked up by the next sync; a failed session keeps
// its old checkpoint so nothing the client never received is skipped.
func (s *syncService) updateMetadata(ctx context.Context, prior *models.SyncMetadata, sess *session) error {
	meta := models.SyncMetadata{
		UserID:   sess.request.UserID,
		DeviceID: sess.request.DeviceID,
	}
	if prior != nil {
		meta = *prior
	}

	if sess.status == models.SyncStatusFailed {
		// A failed session keeps the old checkpoint; committed entities
		// stay committed and will be reconciled by the next session.
		if prior == nil {
			return nil
		}
	} else {
		meta.LastSyncTime = sess.start
	}

	meta.ItemsSynced += int64(sess.response.Stats.ItemsSynced)
	meta.ConflictsDetected += int64(sess.response.Stats.ConflictsDetected)
	meta.ConflictsResolved += int64(sess.response.Stats.ConflictsResolved)
	meta.SyncStatus = sess.status

	return s.metadata.Upsert(ctx, meta)
}

func (sess *session) markCommitted(key models.EntityKey) {
	sess.committedAny = true
	sess.touched[key] = true
	sess.response.Stats.ItemsSynced++
}
