package service

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotobadev/kotoba-sync/models"
)

// spyAgentSyncService counts Sync calls.
type spyAgentSyncService struct {
	calls atomic.Int64
	err   error
}

func (s *spyAgentSyncService) Sync(_ context.Context) (models.SyncResponse, error) {
	s.calls.Add(1)
	return models.SyncResponse{}, s.err
}

func (s *spyAgentSyncService) ListConflicts(_ context.Context, _ string, _ int) ([]models.SyncConflict, error) {
	return nil, nil
}

func (s *spyAgentSyncService) ResolveConflict(_ context.Context, _ string, _ json.RawMessage) error {
	return nil
}

func (s *spyAgentSyncService) IgnoreConflict(_ context.Context, _ string) error {
	return nil
}

func TestAgentSyncJob_Start_RunsSyncOnTicker(t *testing.T) {
	spy := &spyAgentSyncService{}
	job := NewAgentSyncJob(spy)

	// 10ms interval, ~5 ticks in 55ms
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "Sync should run several times, ran: %d", got)
}

func TestAgentSyncJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyAgentSyncService{}
	job := NewAgentSyncJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	callsLater := spy.calls.Load()

	assert.Equal(t, callsAfterStop, callsLater, "no new calls after Stop")
}

func TestAgentSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewAgentSyncJob(&spyAgentSyncService{})

	assert.NotPanics(t, func() { job.Stop() })
}

func TestAgentSyncJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewAgentSyncJob(&spyAgentSyncService{})

	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestAgentSyncJob_Start_DefaultInterval(t *testing.T) {
	spy := &spyAgentSyncService{}
	job := NewAgentSyncJob(spy)
	ctx, cancel := context.WithCancel(context.Background())

	// interval <= 0 defaults to 5 minutes, so nothing fires within 20ms
	job.Start(ctx, 0)
	time.Sleep(20 * time.Millisecond)
	cancel()
	job.Stop()

	assert.Equal(t, int64(0), spy.calls.Load())
}

func TestAgentSyncJob_Restart_StopsPrevious(t *testing.T) {
	spy := &spyAgentSyncService{}
	job := NewAgentSyncJob(spy)
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	callsBefore := spy.calls.Load()
	assert.Greater(t, callsBefore, int64(0))

	// a second Start stops the previous goroutine and keeps ticking
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.calls.Load(), callsBefore)
}

func TestAgentSyncJob_ContextCancel_StopsJob(t *testing.T) {
	spy := &spyAgentSyncService{}
	job := NewAgentSyncJob(spy)
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop hung after context cancellation")
	}
}

func TestAgentSyncJob_SyncError_DoesNotStopJob(t *testing.T) {
	spy := &spyAgentSyncService{err: assert.AnError}
	job := NewAgentSyncJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	require.GreaterOrEqual(t, got, int64(3), "Sync keeps running despite errors: %d", got)
}
