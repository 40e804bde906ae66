package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotobadev/kotoba-sync/internal/service"
	"github.com/kotobadev/kotoba-sync/models"
)

func TestSyncHandler_Success(t *testing.T) {
	sync := &mockSyncService{
		syncFn: func(_ context.Context, request models.SyncRequest) (models.SyncResponse, error) {
			// The body's user id is ignored; the token decides ownership.
			assert.Equal(t, int64(10), request.UserID)
			assert.Equal(t, "phone", request.DeviceID)
			return models.SyncResponse{
				Success: true,
				Status:  models.SyncStatusSuccess,
				Stats:   models.SyncStats{ItemsSynced: 2},
			}, nil
		},
	}

	h := newTestHandler(nil, sync)
	body := jsonBody(t, models.SyncRequest{UserID: 999, DeviceID: "phone"})
	req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(body))
	req = injectUserID(injectNopLogger(req), 10)
	rec := httptest.NewRecorder()

	h.sync(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.SyncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, 2, response.Stats.ItemsSynced)
}

func TestSyncHandler_NoUserInContext(t *testing.T) {
	h := newTestHandler(nil, &mockSyncService{})
	req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader("{}"))
	rec := httptest.NewRecorder()

	h.sync(rec, injectNopLogger(req))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncHandler_InvalidJSON(t *testing.T) {
	h := newTestHandler(nil, &mockSyncService{})
	req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader("{broken"))
	req = injectUserID(injectNopLogger(req), 10)
	rec := httptest.NewRecorder()

	h.sync(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncHandler_SyncInProgress(t *testing.T) {
	sync := &mockSyncService{
		syncFn: func(_ context.Context, _ models.SyncRequest) (models.SyncResponse, error) {
			return models.SyncResponse{}, service.ErrSyncInProgress
		},
	}

	h := newTestHandler(nil, sync)
	req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader("{}"))
	req = injectUserID(injectNopLogger(req), 10)
	rec := httptest.NewRecorder()

	h.sync(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSyncHandler_StorageUnavailable(t *testing.T) {
	sync := &mockSyncService{
		syncFn: func(_ context.Context, _ models.SyncRequest) (models.SyncResponse, error) {
			return models.SyncResponse{}, service.ErrStorageUnavailable
		},
	}

	h := newTestHandler(nil, sync)
	req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader("{}"))
	req = injectUserID(injectNopLogger(req), 10)
	rec := httptest.NewRecorder()

	h.sync(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
