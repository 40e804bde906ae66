package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kotobadev/kotoba-sync/internal/adapter"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/store"
	"github.com/kotobadev/kotoba-sync/models"
)

type agentSyncService struct {
	entities store.LocalEntityRepository
	queue    store.PendingChangeQueue
	state    store.SyncStateRepository
	adapter  adapter.ServerAdapter

	logger *logger.Logger
}

// NewAgentSyncService creates the agent-side sync service.
func NewAgentSyncService(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) AgentSyncService {
	return &agentSyncService{
		entities: storages.Entities,
		queue:    storages.Queue,
		state:    storages.State,
		adapter:  serverAdapter,
		logger:   logger,
	}
}

// Sync implements [AgentSyncService]. One session: read the device identity
// and checkpoint, push the queued changes, apply the server's delta to the
// local mirror, purge the pushed changes, and store the new checkpoint.
//
// Changes enqueued while the session is in flight are not purged; they go out
// with the next session.
func (s *agentSyncService) Sync(ctx context.Context) (models.SyncResponse, error) {
	deviceID, err := s.deviceID(ctx)
	if err != nil {
		return models.SyncResponse{}, err
	}

	checkpoint, err := s.state.Checkpoint(ctx)
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("load sync checkpoint: %w", err)
	}

	changes, lastQueuedID, err := s.queue.List(ctx)
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("list pending changes: %w", err)
	}

	resp, err := s.adapter.Sync(ctx, models.SyncRequest{
		DeviceID:       deviceID,
		LastSyncTime:   checkpoint,
		PendingChanges: changes,
	})
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("sync with server: %w", err)
	}

	if resp.Status == models.SyncStatusFailed {
		// keep the queue and checkpoint; the next session retries everything
		s.logger.Warn().Str("device_id", deviceID).Msg("sync session failed on server")
		return resp, nil
	}

	if err := s.applyServerDelta(ctx, resp); err != nil {
		return resp, err
	}

	// every accepted change was either committed, skipped, rejected, or
	// parked in the server's conflict ledger; none should be resubmitted
	if lastQueuedID > 0 {
		if err := s.queue.Purge(ctx, lastQueuedID); err != nil {
			return resp, fmt.Errorf("purge pushed changes: %w", err)
		}
	}

	if err := s.state.SetCheckpoint(ctx, resp.ServerTime); err != nil {
		return resp, fmt.Errorf("store sync checkpoint: %w", err)
	}

	s.logger.Info().
		Str("device_id", deviceID).
		Str("status", string(resp.Status)).
		Int("items_synced", resp.Stats.ItemsSynced).
		Int("conflicts_detected", resp.Stats.ConflictsDetected).
		Msg("sync session finished")

	return resp, nil
}

func (s *agentSyncService) ListConflicts(ctx context.Context, status string, limit int) ([]models.SyncConflict, error) {
	return s.adapter.ListConflicts(ctx, status, limit)
}

func (s *agentSyncService) ResolveConflict(ctx context.Context, conflictID string, chosenData json.RawMessage) error {
	if conflictID == "" {
		return ErrInvalidDataProvided
	}
	return s.adapter.ResolveConflict(ctx, conflictID, chosenData)
}

func (s *agentSyncService) IgnoreConflict(ctx context.Context, conflictID string) error {
	if conflictID == "" {
		return ErrInvalidDataProvided
	}
	return s.adapter.IgnoreConflict(ctx, conflictID)
}

// deviceID returns the stored device identity, minting one on first use.
func (s *agentSyncService) deviceID(ctx context.Context) (string, error) {
	deviceID, err := s.state.DeviceID(ctx)
	if err == nil {
		return deviceID, nil
	}
	if !errors.Is(err, store.ErrLocalStateNotFound) {
		return "", fmt.Errorf("load device id: %w", err)
	}

	deviceID, err = s.state.EnsureDeviceID(ctx, uuid.NewString())
	if err != nil {
		return "", fmt.Errorf("store device id: %w", err)
	}

	s.logger.Info().Str("device_id", deviceID).Msg("assigned new device id")
	return deviceID, nil
}

func (s *agentSyncService) applyServerDelta(ctx context.Context, resp models.SyncResponse) error {
	if len(resp.UpsertEntities) > 0 {
		if err := s.entities.Upsert(ctx, resp.UpsertEntities...); err != nil {
			return fmt.Errorf("apply server upserts: %w", err)
		}
	}

	if len(resp.DeletedEntityIDs) > 0 {
		if err := s.entities.MarkDeleted(ctx, resp.DeletedEntityIDs...); err != nil {
			return fmt.Errorf("apply server deletions: %w", err)
		}
	}

	return nil
}
