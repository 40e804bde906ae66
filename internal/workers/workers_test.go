package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/kotobadev/kotoba-sync/internal/config"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/mock"
)

// mockWorker tracks how many times Run was called.
type mockWorker struct {
	runCount int
}

func (m *mockWorker) Run() {
	m.runCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// must not panic on empty workers list
	ws.Run()
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// must not panic when workers field is nil
	ws.Run()
}

func TestRetentionWorker_SweepsOnTicker(t *testing.T) {
	ctrl := gomock.NewController(t)
	tombstones := mock.NewMockTombstoneRepository(ctrl)
	ledger := mock.NewMockConflictLedger(ctrl)

	var sweeps atomic.Int64

	tombstones.EXPECT().PurgeExpired(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cutoff time.Time) (int64, error) {
			assert.True(t, cutoff.Before(time.Now()), "cutoff lies in the past")
			sweeps.Add(1)
			return 2, nil
		}).MinTimes(1)
	ledger.EXPECT().PurgeResolvedBefore(gomock.Any(), gomock.Any()).
		Return(int64(1), nil).MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Workers{
		RetentionSweepInterval: 10 * time.Millisecond,
		TombstoneRetention:     time.Hour,
	}
	NewRetentionWorker(ctx, tombstones, ledger, cfg, logger.Nop()).Run()

	time.Sleep(35 * time.Millisecond)
	cancel()
	time.Sleep(10 * time.Millisecond)

	assert.GreaterOrEqual(t, sweeps.Load(), int64(1))
}

func TestRetentionWorker_ZeroIntervalDisablesWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	tombstones := mock.NewMockTombstoneRepository(ctrl)
	ledger := mock.NewMockConflictLedger(ctrl)

	// no Purge expectations: the worker must never sweep

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	NewRetentionWorker(ctx, tombstones, ledger, config.Workers{}, logger.Nop()).Run()

	time.Sleep(20 * time.Millisecond)
}

func TestRetentionWorker_PurgeErrorDoesNotStopLoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	tombstones := mock.NewMockTombstoneRepository(ctrl)
	ledger := mock.NewMockConflictLedger(ctrl)

	tombstones.EXPECT().PurgeExpired(gomock.Any(), gomock.Any()).
		Return(int64(0), assert.AnError).MinTimes(2)
	ledger.EXPECT().PurgeResolvedBefore(gomock.Any(), gomock.Any()).
		Return(int64(0), nil).MinTimes(2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Workers{
		RetentionSweepInterval: 10 * time.Millisecond,
		TombstoneRetention:     time.Hour,
	}
	NewRetentionWorker(ctx, tombstones, ledger, cfg, logger.Nop()).Run()

	time.Sleep(55 * time.Millisecond)
	cancel()
}
