package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/service"
	"github.com/kotobadev/kotoba-sync/internal/utils"
	"github.com/kotobadev/kotoba-sync/models"
)

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	loginFn        func(ctx context.Context, user models.User) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// mockSyncService implements service.SyncService for unit tests.
type mockSyncService struct {
	syncFn            func(ctx context.Context, request models.SyncRequest) (models.SyncResponse, error)
	listConflictsFn   func(ctx context.Context, userID int64, status models.ConflictStatus, limit uint64) ([]models.SyncConflict, error)
	resolveConflictFn func(ctx context.Context, userID int64, conflictID string, chosenData []byte, resolvedBy string) error
	ignoreConflictFn  func(ctx context.Context, userID int64, conflictID string, resolvedBy string) error
}

func (m *mockSyncService) Sync(ctx context.Context, request models.SyncRequest) (models.SyncResponse, error) {
	return m.syncFn(ctx, request)
}

func (m *mockSyncService) ListConflicts(ctx context.Context, userID int64, status models.ConflictStatus, limit uint64) ([]models.SyncConflict, error) {
	return m.listConflictsFn(ctx, userID, status, limit)
}

func (m *mockSyncService) ResolveConflict(ctx context.Context, userID int64, conflictID string, chosenData []byte, resolvedBy string) error {
	return m.resolveConflictFn(ctx, userID, conflictID, chosenData, resolvedBy)
}

func (m *mockSyncService) IgnoreConflict(ctx context.Context, userID int64, conflictID string, resolvedBy string) error {
	return m.ignoreConflictFn(ctx, userID, conflictID, resolvedBy)
}

// mockAppInfoService implements service.AppInfoService for unit tests.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// newTestHandler builds a Handler with the given service mocks; nil mocks are
// fine for handlers the test never reaches.
func newTestHandler(auth service.AuthService, sync service.SyncService) *Handler {
	return NewHandler(&service.Services{
		AuthService:    auth,
		SyncService:    sync,
		AppInfoService: &mockAppInfoService{version: "test"},
	}, logger.Nop())
}

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}

// injectUserID stores an authenticated user id the way the auth middleware
// does.
func injectUserID(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
	return r.WithContext(ctx)
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// stubToken returns a models.Token with the given signed string.
func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}
