package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kotobadev/kotoba-sync/internal/config"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/mock"
	"github.com/kotobadev/kotoba-sync/internal/store"
	"github.com/kotobadev/kotoba-sync/internal/validators"
	"github.com/kotobadev/kotoba-sync/models"
)

type syncServiceMocks struct {
	entities   *mock.MockVersionedStore
	metadata   *mock.MockSyncMetadataRepository
	ledger     *mock.MockConflictLedger
	tombstones *mock.MockTombstoneRepository
}

func newTestSyncService(t *testing.T, strategy strategyConfig) (*syncService, syncServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mocks := syncServiceMocks{
		entities:   mock.NewMockVersionedStore(ctrl),
		metadata:   mock.NewMockSyncMetadataRepository(ctrl),
		ledger:     mock.NewMockConflictLedger(ctrl),
		tombstones: mock.NewMockTombstoneRepository(ctrl),
	}

	registry := NewEntityRegistry()
	validator := validators.NewSyncValidator()
	l := logger.Nop()

	service := &syncService{
		entities:   mocks.entities,
		metadata:   mocks.metadata,
		ledger:     mocks.ledger,
		tombstones: mocks.tombstones,
		registry:   registry,
		builder:    newChangeSetBuilder(registry, validator),
		detector:   newConflictDetector(mocks.entities, registry, l),
		engine:     newResolutionEngine(mocks.entities, mocks.ledger, registry, strategy, l),
		locks:      newSessionLocks(time.Minute),
		validator:  validator,
		logger:     l,
	}

	return service, mocks
}

func serverWinsConfig() strategyConfig {
	return strategyConfig{defaultStrategy: models.ResolutionServerWins}
}

func TestSync_InvalidRequest(t *testing.T) {
	service, _ := newTestSyncService(t, serverWinsConfig())

	_, err := service.Sync(context.Background(), models.SyncRequest{DeviceID: "phone"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = service.Sync(context.Background(), models.SyncRequest{UserID: 10})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestSync_RejectsConcurrentSessionForSameDevice(t *testing.T) {
	service, _ := newTestSyncService(t, serverWinsConfig())

	_, err := service.locks.Acquire(10, "phone")
	require.NoError(t, err)

	_, err = service.Sync(context.Background(), models.SyncRequest{UserID: 10, DeviceID: "phone"})
	assert.ErrorIs(t, err, ErrSyncInProgress)
}

func TestSync_CleanUpdateCommitsAndPullSkipsEcho(t *testing.T) {
	service, mocks := newTestSyncService(t, serverWinsConfig())
	checkpoint := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	mocks.metadata.EXPECT().
		Get(gomock.Any(), int64(10), "phone").
		Return(models.SyncMetadata{UserID: 10, DeviceID: "phone", LastSyncTime: checkpoint, ItemsSynced: 5}, nil)

	mocks.entities.EXPECT().
		Get(gomock.Any(), models.EntityTypeVocabulary, int64(1)).
		Return(models.SyncEntity{EntityType: models.EntityTypeVocabulary, EntityID: 1, RowVersion: 3}, nil)
	mocks.entities.EXPECT().
		ConditionallyPut(gomock.Any(), gomock.Any(), int64(3)).
		Return(int64(4), nil)

	mocks.entities.EXPECT().
		ListModifiedSince(gomock.Any(), int64(10), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, since *time.Time) ([]models.SyncEntity, error) {
			require.NotNil(t, since)
			assert.True(t, since.Equal(checkpoint))
			return []models.SyncEntity{
				// The row this session just wrote must not be echoed back.
				{EntityType: models.EntityTypeVocabulary, EntityID: 1, Payload: vocabPayload("猫"), RowVersion: 4},
				{EntityType: models.EntityTypeVocabulary, EntityID: 2, Payload: vocabPayload("犬"), RowVersion: 2},
			}, nil
		})
	mocks.tombstones.EXPECT().
		ListSince(gomock.Any(), int64(10), gomock.Any()).
		Return(nil, nil)

	var saved models.SyncMetadata
	mocks.metadata.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, meta models.SyncMetadata) error {
			saved = meta
			return nil
		})

	response, err := service.Sync(context.Background(), models.SyncRequest{
		UserID:   10,
		DeviceID: "phone",
		PendingChanges: []models.PendingChange{
			{EntityType: models.EntityTypeVocabulary, EntityID: 1, Operation: models.OperationUpdate, Payload: vocabPayload("猫"), ClientRowVersion: 3},
		},
	})
	require.NoError(t, err)

	assert.True(t, response.Success)
	assert.Equal(t, models.SyncStatusSuccess, response.Status)
	assert.Equal(t, 1, response.Stats.ItemsSynced)
	require.Len(t, response.UpsertEntities, 1)
	assert.Equal(t, int64(2), response.UpsertEntities[0].EntityID)

	// The new checkpoint is the session start, handed back as ServerTime.
	assert.True(t, saved.LastSyncTime.Equal(response.ServerTime))
	assert.Equal(t, int64(6), saved.ItemsSynced)
	assert.Equal(t, models.SyncStatusSuccess, saved.SyncStatus)
}

func TestSync_StaleDeleteIsSkipped(t *testing.T) {
	service, mocks := newTestSyncService(t, serverWinsConfig())

	mocks.metadata.EXPECT().
		Get(gomock.Any(), int64(10), "phone").
		Return(models.SyncMetadata{}, store.ErrMetadataNotFound)

	mocks.entities.EXPECT().
		Get(gomock.Any(), models.EntityTypeVocabulary, int64(1)).
		Return(models.SyncEntity{EntityType: models.EntityTypeVocabulary, EntityID: 1, RowVersion: 5, IsDeleted: true}, nil)

	mocks.entities.EXPECT().
		ListModifiedSince(gomock.Any(), int64(10), nil).
		Return(nil, nil)
	mocks.tombstones.EXPECT().
		ListSince(gomock.Any(), int64(10), nil).
		Return(nil, nil)
	mocks.metadata.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	response, err := service.Sync(context.Background(), models.SyncRequest{
		UserID:   10,
		DeviceID: "phone",
		PendingChanges: []models.PendingChange{
			{EntityType: models.EntityTypeVocabulary, EntityID: 1, Operation: models.OperationDelete, ClientRowVersion: 4},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.SyncStatusSuccess, response.Status)
	assert.Zero(t, response.Stats.ItemsSynced)
	require.Len(t, response.SkippedChanges, 1)
	assert.Equal(t, skipReasonAlreadyDeleted, response.SkippedChanges[0].Reason)
}

func TestSync_ConflictResolvedServerWins(t *testing.T) {
	service, mocks := newTestSyncService(t, serverWinsConfig())

	server := models.SyncEntity{
		EntityType: models.EntityTypeVocabulary,
		EntityID:   1,
		UserID:     10,
		Payload:    vocabPayload("犬"),
		RowVersion: 5,
	}

	mocks.metadata.EXPECT().
		Get(gomock.Any(), int64(10), "phone").
		Return(models.SyncMetadata{}, store.ErrMetadataNotFound)

	mocks.entities.EXPECT().
		Get(gomock.Any(), models.EntityTypeVocabulary, int64(1)).
		Return(server, nil)
	mocks.ledger.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	mocks.entities.EXPECT().
		ListModifiedSince(gomock.Any(), int64(10), nil).
		Return([]models.SyncEntity{server}, nil)
	mocks.tombstones.EXPECT().
		ListSince(gomock.Any(), int64(10), nil).
		Return(nil, nil)

	var saved models.SyncMetadata
	mocks.metadata.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, meta models.SyncMetadata) error {
			saved = meta
			return nil
		})

	response, err := service.Sync(context.Background(), models.SyncRequest{
		UserID:   10,
		DeviceID: "phone",
		PendingChanges: []models.PendingChange{
			{EntityType: models.EntityTypeVocabulary, EntityID: 1, Operation: models.OperationUpdate, Payload: vocabPayload("猫"), ClientRowVersion: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.SyncStatusSuccess, response.Status)
	assert.Equal(t, 1, response.Stats.ConflictsDetected)
	assert.Equal(t, 1, response.Stats.ConflictsResolved)

	// The surviving server state comes back exactly once, not echoed again
	// by the pull phase.
	require.Len(t, response.UpsertEntities, 1)
	assert.JSONEq(t, string(vocabPayload("犬")), string(response.UpsertEntities[0].Payload))

	assert.Equal(t, int64(1), saved.ConflictsDetected)
	assert.Equal(t, int64(1), saved.ConflictsResolved)
}

func TestSync_ManualConflictMakesSessionPartial(t *testing.T) {
	service, mocks := newTestSyncService(t, strategyConfig{defaultStrategy: models.ResolutionManual})

	mocks.metadata.EXPECT().
		Get(gomock.Any(), int64(10), "phone").
		Return(models.SyncMetadata{}, store.ErrMetadataNotFound)

	mocks.entities.EXPECT().
		Get(gomock.Any(), models.EntityTypeVocabulary, int64(1)).
		Return(models.SyncEntity{EntityType: models.EntityTypeVocabulary, EntityID: 1, Payload: vocabPayload("犬"), RowVersion: 5}, nil)
	mocks.ledger.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	// The parked entity is excluded from the pull echo as well.
	mocks.entities.EXPECT().
		ListModifiedSince(gomock.Any(), int64(10), nil).
		Return([]models.SyncEntity{{EntityType: models.EntityTypeVocabulary, EntityID: 1, Payload: vocabPayload("犬"), RowVersion: 5}}, nil)
	mocks.tombstones.EXPECT().
		ListSince(gomock.Any(), int64(10), nil).
		Return(nil, nil)

	var saved models.SyncMetadata
	mocks.metadata.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, meta models.SyncMetadata) error {
			saved = meta
			return nil
		})

	response, err := service.Sync(context.Background(), models.SyncRequest{
		UserID:   10,
		DeviceID: "phone",
		PendingChanges: []models.PendingChange{
			{EntityType: models.EntityTypeVocabulary, EntityID: 1, Operation: models.OperationUpdate, Payload: vocabPayload("猫"), ClientRowVersion: 2},
		},
	})
	require.NoError(t, err)

	assert.False(t, response.Success)
	assert.Equal(t, models.SyncStatusPartial, response.Status)
	require.Len(t, response.PendingConflicts, 1)
	assert.NotEmpty(t, response.PendingConflicts[0].ConflictID)
	assert.Empty(t, response.UpsertEntities)
	assert.Equal(t, 1, response.Stats.ConflictsDetected)
	assert.Zero(t, response.Stats.ConflictsResolved)

	assert.Equal(t, models.SyncStatusPartial, saved.SyncStatus)
}

func TestSync_StorageErrorFailsSessionWithoutFirstCheckpoint(t *testing.T) {
	service, mocks := newTestSyncService(t, serverWinsConfig())

	mocks.metadata.EXPECT().
		Get(gomock.Any(), int64(10), "phone").
		Return(models.SyncMetadata{}, store.ErrMetadataNotFound)

	mocks.entities.EXPECT().
		Get(gomock.Any(), models.EntityTypeVocabulary, int64(1)).
		Return(models.SyncEntity{}, store.ErrExecutingQuery)

	// No pull, and no metadata row for a failed first sync.

	response, err := service.Sync(context.Background(), models.SyncRequest{
		UserID:   10,
		DeviceID: "phone",
		PendingChanges: []models.PendingChange{
			{EntityType: models.EntityTypeVocabulary, EntityID: 1, Operation: models.OperationUpdate, Payload: vocabPayload("猫"), ClientRowVersion: 3},
		},
	})
	require.NoError(t, err)

	assert.False(t, response.Success)
	assert.Equal(t, models.SyncStatusFailed, response.Status)
}

func TestSync_FailedPullKeepsOldCheckpoint(t *testing.T) {
	service, mocks := newTestSyncService(t, serverWinsConfig())
	checkpoint := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	mocks.metadata.EXPECT().
		Get(gomock.Any(), int64(10), "phone").
		Return(models.SyncMetadata{UserID: 10, DeviceID: "phone", LastSyncTime: checkpoint}, nil)

	mocks.entities.EXPECT().
		ListModifiedSince(gomock.Any(), int64(10), gomock.Any()).
		Return(nil, store.ErrExecutingQuery)

	var saved models.SyncMetadata
	mocks.metadata.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, meta models.SyncMetadata) error {
			saved = meta
			return nil
		})

	response, err := service.Sync(context.Background(), models.SyncRequest{UserID: 10, DeviceID: "phone"})
	require.NoError(t, err)

	assert.Equal(t, models.SyncStatusFailed, response.Status)

	// Nothing was pulled, so the checkpoint must not move forward.
	assert.True(t, saved.LastSyncTime.Equal(checkpoint))
	assert.Equal(t, models.SyncStatusFailed, saved.SyncStatus)
}

func TestSync_CleanCommitRaceRoutedThroughResolution(t *testing.T) {
	service, mocks := newTestSyncService(t, serverWinsConfig())

	raced := models.SyncEntity{
		EntityType: models.EntityTypeVocabulary,
		EntityID:   1,
		UserID:     10,
		Payload:    vocabPayload("鳥"),
		RowVersion: 4,
	}

	mocks.metadata.EXPECT().
		Get(gomock.Any(), int64(10), "phone").
		Return(models.SyncMetadata{}, store.ErrMetadataNotFound)

	gomock.InOrder(
		// Clean at detection time.
		mocks.entities.EXPECT().
			Get(gomock.Any(), models.EntityTypeVocabulary, int64(1)).
			Return(models.SyncEntity{EntityType: models.EntityTypeVocabulary, EntityID: 1, Payload: vocabPayload("猫"), RowVersion: 3}, nil),
		// Another session commits in between; the conditional write loses.
		mocks.entities.EXPECT().
			ConditionallyPut(gomock.Any(), gomock.Any(), int64(3)).
			Return(int64(0), store.ErrVersionConflict),
		// Re-detection sees the interfering write and reports a conflict.
		mocks.entities.EXPECT().
			Get(gomock.Any(), models.EntityTypeVocabulary, int64(1)).
			Return(raced, nil),
	)
	mocks.ledger.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	mocks.entities.EXPECT().
		ListModifiedSince(gomock.Any(), int64(10), nil).
		Return(nil, nil)
	mocks.tombstones.EXPECT().
		ListSince(gomock.Any(), int64(10), nil).
		Return(nil, nil)
	mocks.metadata.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	response, err := service.Sync(context.Background(), models.SyncRequest{
		UserID:   10,
		DeviceID: "phone",
		PendingChanges: []models.PendingChange{
			{EntityType: models.EntityTypeVocabulary, EntityID: 1, Operation: models.OperationUpdate, Payload: vocabPayload("猫"), ClientRowVersion: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.SyncStatusSuccess, response.Status)
	assert.Equal(t, 1, response.Stats.ConflictsDetected)
	assert.Equal(t, 1, response.Stats.ConflictsResolved)
	require.Len(t, response.UpsertEntities, 1)
	assert.JSONEq(t, string(vocabPayload("鳥")), string(response.UpsertEntities[0].Payload))
}

func TestSync_PullReportsDeletionsAndTombstones(t *testing.T) {
	service, mocks := newTestSyncService(t, serverWinsConfig())
	checkpoint := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	deletedAt := checkpoint.Add(time.Hour)

	mocks.metadata.EXPECT().
		Get(gomock.Any(), int64(10), "phone").
		Return(models.SyncMetadata{UserID: 10, DeviceID: "phone", LastSyncTime: checkpoint}, nil)

	mocks.entities.EXPECT().
		ListModifiedSince(gomock.Any(), int64(10), gomock.Any()).
		Return([]models.SyncEntity{
			{EntityType: models.EntityTypeVocabulary, EntityID: 1, RowVersion: 6, IsDeleted: true, DeletedAt: &deletedAt},
			{EntityType: models.EntityTypeVocabulary, EntityID: 2, Payload: vocabPayload("犬"), RowVersion: 2},
		}, nil)

	mocks.tombstones.EXPECT().
		ListSince(gomock.Any(), int64(10), gomock.Any()).
		Return([]models.DeletedItem{
			// Duplicate of the soft-deleted row above; must not repeat.
			{EntityType: models.EntityTypeVocabulary, EntityID: 1, UserID: 10, DeletedAt: deletedAt},
			// A deletion whose entity row was already purged.
			{EntityType: models.EntityTypeWordList, EntityID: 3, UserID: 10, DeletedAt: deletedAt},
		}, nil)
	mocks.metadata.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	response, err := service.Sync(context.Background(), models.SyncRequest{UserID: 10, DeviceID: "phone"})
	require.NoError(t, err)

	assert.Equal(t, models.SyncStatusSuccess, response.Status)
	require.Len(t, response.UpsertEntities, 1)
	assert.Equal(t, int64(2), response.UpsertEntities[0].EntityID)
	assert.ElementsMatch(t, []models.EntityKey{
		{EntityType: models.EntityTypeVocabulary, EntityID: 1},
		{EntityType: models.EntityTypeWordList, EntityID: 3},
	}, response.DeletedEntityIDs)
}

func TestBuildStrategyConfig(t *testing.T) {
	strategy, err := buildStrategyConfig(config.Sync{
		DefaultStrategy: "server_wins",
		Strategies:      map[string]string{models.EntityTypeLearningProgress: "merge"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ResolutionServerWins, strategy.forType(models.EntityTypeVocabulary))
	assert.Equal(t, models.ResolutionMerge, strategy.forType(models.EntityTypeLearningProgress))

	_, err = buildStrategyConfig(config.Sync{DefaultStrategy: "newest_wins"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = buildStrategyConfig(config.Sync{
		DefaultStrategy: "server_wins",
		Strategies:      map[string]string{models.EntityTypeWordList: "oldest_wins"},
	})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
