package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/mock"
	"github.com/kotobadev/kotoba-sync/internal/store"
	"github.com/kotobadev/kotoba-sync/models"
)

func newTestEngine(t *testing.T, strategy strategyConfig) (*resolutionEngine, *mock.MockVersionedStore, *mock.MockConflictLedger) {
	t.Helper()

	ctrl := gomock.NewController(t)
	entities := mock.NewMockVersionedStore(ctrl)
	ledger := mock.NewMockConflictLedger(ctrl)

	engine := newResolutionEngine(entities, ledger, NewEntityRegistry(), strategy, logger.Nop())

	return engine, entities, ledger
}

// conflictingUpdate builds a detection for a client update that lost against
// server version 5.
func conflictingUpdate() detection {
	return detection{
		change: models.PendingChange{
			EntityType:       models.EntityTypeVocabulary,
			EntityID:         1,
			Operation:        models.OperationUpdate,
			Payload:          vocabPayload("猫"),
			ClientRowVersion: 3,
		},
		class: classConflicting,
		server: models.SyncEntity{
			EntityType: models.EntityTypeVocabulary,
			EntityID:   1,
			UserID:     10,
			Payload:    vocabPayload("犬"),
			RowVersion: 5,
		},
		hasServer: true,
	}
}

func TestResolve_ServerWinsReturnsServerState(t *testing.T) {
	engine, _, ledger := newTestEngine(t, strategyConfig{defaultStrategy: models.ResolutionServerWins})

	var appended models.SyncConflict
	ledger.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, conflict models.SyncConflict) error {
			appended = conflict
			return nil
		})

	outcome, err := engine.Resolve(context.Background(), 10, "phone", conflictingUpdate())
	require.NoError(t, err)

	assert.True(t, outcome.resolved)
	require.NotNil(t, outcome.upsert)
	assert.JSONEq(t, string(vocabPayload("犬")), string(outcome.upsert.Payload))
	assert.Equal(t, int64(5), outcome.upsert.RowVersion)
	assert.Nil(t, outcome.pending)

	assert.NotEmpty(t, appended.ConflictID)
	assert.Equal(t, models.ResolutionServerWins, appended.ResolutionStrategy)
	assert.Equal(t, models.ConflictStatusResolved, appended.ConflictStatus)
	assert.Equal(t, autoResolver, appended.ResolvedBy)
	require.NotNil(t, appended.ResolvedAt)
	assert.JSONEq(t, string(vocabPayload("犬")), string(appended.ResolutionData))
	assert.JSONEq(t, string(vocabPayload("猫")), string(appended.ClientData))
}

func TestResolve_ServerWinsOverDeletedRowDropsClientCopy(t *testing.T) {
	engine, _, ledger := newTestEngine(t, strategyConfig{defaultStrategy: models.ResolutionServerWins})

	det := conflictingUpdate()
	det.server.IsDeleted = true

	ledger.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := engine.Resolve(context.Background(), 10, "phone", det)
	require.NoError(t, err)

	assert.True(t, outcome.resolved)
	assert.Nil(t, outcome.upsert)
	require.NotNil(t, outcome.deleted)
	assert.Equal(t, models.EntityKey{EntityType: models.EntityTypeVocabulary, EntityID: 1}, *outcome.deleted)
}

func TestResolve_ClientWinsForceCommitsClientPayload(t *testing.T) {
	engine, entities, ledger := newTestEngine(t, strategyConfig{defaultStrategy: models.ResolutionClientWins})

	entities.EXPECT().
		ConditionallyPut(gomock.Any(), gomock.Any(), int64(5)).
		DoAndReturn(func(_ context.Context, entity models.SyncEntity, _ int64) (int64, error) {
			assert.Equal(t, models.EntityTypeVocabulary, entity.EntityType)
			assert.Equal(t, int64(1), entity.EntityID)
			assert.Equal(t, int64(10), entity.UserID)
			assert.Equal(t, "猫|ja", entity.NaturalKey)
			assert.JSONEq(t, string(vocabPayload("猫")), string(entity.Payload))
			return 6, nil
		})
	ledger.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := engine.Resolve(context.Background(), 10, "phone", conflictingUpdate())
	require.NoError(t, err)

	assert.True(t, outcome.resolved)
	require.NotNil(t, outcome.upsert)
	assert.Equal(t, int64(6), outcome.upsert.RowVersion)
	assert.JSONEq(t, string(vocabPayload("猫")), string(outcome.upsert.Payload))
}

func TestResolve_ClientWinsDeleteSoftDeletes(t *testing.T) {
	engine, entities, ledger := newTestEngine(t, strategyConfig{defaultStrategy: models.ResolutionClientWins})

	det := conflictingUpdate()
	det.change.Operation = models.OperationDelete
	det.change.Payload = nil

	entities.EXPECT().
		SoftDelete(gomock.Any(), models.EntityTypeVocabulary, int64(1), int64(5), autoResolver).
		Return(int64(6), nil)
	ledger.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := engine.Resolve(context.Background(), 10, "phone", det)
	require.NoError(t, err)

	assert.True(t, outcome.resolved)
	require.NotNil(t, outcome.deleted)
	assert.Equal(t, int64(1), outcome.deleted.EntityID)
}

func TestResolve_MergeCombinesBothSides(t *testing.T) {
	engine, entities, ledger := newTestEngine(t, strategyConfig{
		defaultStrategy: models.ResolutionServerWins,
		perType:         map[string]models.ResolutionStrategy{models.EntityTypeLearningProgress: models.ResolutionMerge},
	})

	det := detection{
		change: models.PendingChange{
			EntityType:       models.EntityTypeLearningProgress,
			EntityID:         42,
			Operation:        models.OperationUpdate,
			Payload:          json.RawMessage(`{"vocabulary_id":7,"study_count":10,"correct_count":4}`),
			ClientRowVersion: 2,
		},
		class: classConflicting,
		server: models.SyncEntity{
			EntityType: models.EntityTypeLearningProgress,
			EntityID:   42,
			UserID:     10,
			Payload:    json.RawMessage(`{"vocabulary_id":7,"study_count":8,"correct_count":7}`),
			RowVersion: 3,
		},
		hasServer: true,
	}

	entities.EXPECT().
		ConditionallyPut(gomock.Any(), gomock.Any(), int64(3)).
		DoAndReturn(func(_ context.Context, entity models.SyncEntity, _ int64) (int64, error) {
			var merged models.LearningProgressPayload
			require.NoError(t, json.Unmarshal(entity.Payload, &merged))
			assert.Equal(t, 10, merged.StudyCount)
			assert.Equal(t, 7, merged.CorrectCount)
			return 4, nil
		})

	var appended models.SyncConflict
	ledger.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, conflict models.SyncConflict) error {
			appended = conflict
			return nil
		})

	outcome, err := engine.Resolve(context.Background(), 10, "phone", det)
	require.NoError(t, err)

	assert.True(t, outcome.resolved)
	require.NotNil(t, outcome.upsert)
	assert.Equal(t, int64(4), outcome.upsert.RowVersion)
	assert.Equal(t, models.ResolutionMerge, appended.ResolutionStrategy)
}

func TestResolve_MergeWithoutMergeFuncFallsBackToServerWins(t *testing.T) {
	// Vocabulary has no registered merge function.
	engine, _, ledger := newTestEngine(t, strategyConfig{defaultStrategy: models.ResolutionMerge})

	var appended models.SyncConflict
	ledger.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, conflict models.SyncConflict) error {
			appended = conflict
			return nil
		})

	outcome, err := engine.Resolve(context.Background(), 10, "phone", conflictingUpdate())
	require.NoError(t, err)

	assert.True(t, outcome.resolved)
	require.NotNil(t, outcome.upsert)
	assert.JSONEq(t, string(vocabPayload("犬")), string(outcome.upsert.Payload))
	assert.Equal(t, models.ResolutionServerWins, appended.ResolutionStrategy)
}

func TestResolve_MergeDeleteCommitsSoftDelete(t *testing.T) {
	engine, entities, ledger := newTestEngine(t, strategyConfig{
		defaultStrategy: models.ResolutionServerWins,
		perType:         map[string]models.ResolutionStrategy{models.EntityTypeLearningProgress: models.ResolutionMerge},
	})

	det := detection{
		change: models.PendingChange{
			EntityType:       models.EntityTypeLearningProgress,
			EntityID:         42,
			Operation:        models.OperationDelete,
			ClientRowVersion: 2,
		},
		class: classConflicting,
		server: models.SyncEntity{
			EntityType: models.EntityTypeLearningProgress,
			EntityID:   42,
			UserID:     10,
			Payload:    json.RawMessage(`{"vocabulary_id":7,"study_count":8,"correct_count":7}`),
			RowVersion: 3,
		},
		hasServer: true,
	}

	// The merge function must not see the delete's empty payload; the
	// deletion commits directly.
	entities.EXPECT().
		SoftDelete(gomock.Any(), models.EntityTypeLearningProgress, int64(42), int64(3), autoResolver).
		Return(int64(4), nil)
	ledger.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := engine.Resolve(context.Background(), 10, "phone", det)
	require.NoError(t, err)

	assert.True(t, outcome.resolved)
	assert.Nil(t, outcome.upsert)
	require.NotNil(t, outcome.deleted)
	assert.Equal(t, models.EntityKey{EntityType: models.EntityTypeLearningProgress, EntityID: 42}, *outcome.deleted)
}

func TestResolve_DoubleRaceEscalatesToManual(t *testing.T) {
	engine, entities, ledger := newTestEngine(t, strategyConfig{defaultStrategy: models.ResolutionClientWins})

	racedServer := models.SyncEntity{
		EntityType: models.EntityTypeVocabulary,
		EntityID:   1,
		UserID:     10,
		Payload:    vocabPayload("鳥"),
		RowVersion: 7,
	}

	gomock.InOrder(
		entities.EXPECT().
			ConditionallyPut(gomock.Any(), gomock.Any(), int64(5)).
			Return(int64(0), store.ErrVersionConflict),
		entities.EXPECT().
			Get(gomock.Any(), models.EntityTypeVocabulary, int64(1)).
			Return(racedServer, nil),
		entities.EXPECT().
			ConditionallyPut(gomock.Any(), gomock.Any(), int64(7)).
			Return(int64(0), store.ErrVersionConflict),
	)

	var appended models.SyncConflict
	ledger.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, conflict models.SyncConflict) error {
			appended = conflict
			return nil
		})

	outcome, err := engine.Resolve(context.Background(), 10, "phone", conflictingUpdate())
	require.NoError(t, err)

	assert.False(t, outcome.resolved)
	assert.Nil(t, outcome.upsert)
	require.NotNil(t, outcome.pending)
	assert.Equal(t, appended.ConflictID, outcome.pending.ConflictID)

	assert.Equal(t, models.ResolutionManual, appended.ResolutionStrategy)
	assert.Equal(t, models.ConflictStatusPending, appended.ConflictStatus)
	assert.Nil(t, appended.ResolvedAt)
	assert.Empty(t, appended.ResolvedBy)
}

func TestResolve_ManualParksConflictWithBothSides(t *testing.T) {
	engine, _, ledger := newTestEngine(t, strategyConfig{defaultStrategy: models.ResolutionManual})

	var appended models.SyncConflict
	ledger.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, conflict models.SyncConflict) error {
			appended = conflict
			return nil
		})

	outcome, err := engine.Resolve(context.Background(), 10, "phone", conflictingUpdate())
	require.NoError(t, err)

	assert.False(t, outcome.resolved)
	require.NotNil(t, outcome.pending)
	assert.JSONEq(t, string(vocabPayload("猫")), string(outcome.pending.ClientData))
	assert.JSONEq(t, string(vocabPayload("犬")), string(outcome.pending.ServerData))
	assert.NotEmpty(t, outcome.pending.ConflictID)

	assert.Equal(t, models.ConflictStatusPending, appended.ConflictStatus)
	assert.Nil(t, appended.ResolutionData)
}

func TestResolve_LedgerAppendFailurePropagates(t *testing.T) {
	engine, _, ledger := newTestEngine(t, strategyConfig{defaultStrategy: models.ResolutionServerWins})

	ledger.EXPECT().Append(gomock.Any(), gomock.Any()).Return(store.ErrExecutingQuery)

	_, err := engine.Resolve(context.Background(), 10, "phone", conflictingUpdate())
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}
