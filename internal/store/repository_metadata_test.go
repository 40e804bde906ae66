package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/models"
)

func newTestMetadataRepo(t *testing.T) (*syncMetadataRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &syncMetadataRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestMetadataGet_Success(t *testing.T) {
	repo, mock, db := newTestMetadataRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"user_id", "device_id", "last_sync_time", "items_synced", "conflicts_detected", "conflicts_resolved", "sync_status", "created_at", "updated_at"}).
		AddRow(int64(42), "tablet", now, int64(17), int64(2), int64(1), "success", now, now)

	mock.ExpectQuery("SELECT user_id").
		WithArgs(int64(42), "tablet").
		WillReturnRows(rows)

	m, err := repo.Get(context.Background(), 42, "tablet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ItemsSynced != 17 {
		t.Errorf("expected 17 items synced, got %d", m.ItemsSynced)
	}
	if m.SyncStatus != models.SyncStatusSuccess {
		t.Errorf("expected success status, got %s", m.SyncStatus)
	}
}

func TestMetadataGet_FirstSync(t *testing.T) {
	repo, mock, db := newTestMetadataRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id").
		WithArgs(int64(42), "tablet").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 42, "tablet")
	if !errors.Is(err, ErrMetadataNotFound) {
		t.Fatalf("expected ErrMetadataNotFound, got %v", err)
	}
}

func TestMetadataUpsert_Success(t *testing.T) {
	repo, mock, db := newTestMetadataRepo(t)
	defer db.Close()

	m := models.SyncMetadata{
		UserID:            42,
		DeviceID:          "tablet",
		LastSyncTime:      time.Now(),
		ItemsSynced:       20,
		ConflictsDetected: 3,
		ConflictsResolved: 2,
		SyncStatus:        models.SyncStatusPartial,
	}

	mock.ExpectExec("INSERT INTO sync_metadata").
		WithArgs(m.UserID, m.DeviceID, m.LastSyncTime, m.ItemsSynced, m.ConflictsDetected, m.ConflictsResolved, m.SyncStatus).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Upsert(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMinLastSyncTime_NoDevices(t *testing.T) {
	repo, mock, db := newTestMetadataRepo(t)
	defer db.Close()

	// MIN over an empty set is a single NULL row.
	mock.ExpectQuery("SELECT MIN").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"min"}).AddRow(nil))

	_, err := repo.MinLastSyncTime(context.Background(), 42)
	if !errors.Is(err, ErrMetadataNotFound) {
		t.Fatalf("expected ErrMetadataNotFound, got %v", err)
	}
}

func TestMinLastSyncTime_Success(t *testing.T) {
	repo, mock, db := newTestMetadataRepo(t)
	defer db.Close()

	oldest := time.Now().Add(-48 * time.Hour)

	mock.ExpectQuery("SELECT MIN").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"min"}).AddRow(oldest))

	got, err := repo.MinLastSyncTime(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(oldest) {
		t.Errorf("expected %v, got %v", oldest, got)
	}
}
