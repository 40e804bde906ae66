package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotobadev/kotoba-sync/internal/service"
	"github.com/kotobadev/kotoba-sync/internal/utils"
	"github.com/kotobadev/kotoba-sync/models"
)

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	middleware := h.auth(next)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = injectNopLogger(req)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)
	return rr
}

func TestGetTokenFromAuthHeader_TableTest(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{
			name:      "valid Bearer token",
			header:    "Bearer my-jwt-token",
			wantToken: "my-jwt-token",
		},
		{
			name:    "missing token part",
			header:  "Bearer",
			wantErr: ErrInvalidAuthorizationHeader,
		},
		{
			name:    "only spaces",
			header:  " ",
			wantErr: ErrEmptyToken,
		},
		{
			name:      "non-Bearer scheme still parses second part",
			header:    "Basic dXNlcjpwYXNz",
			wantToken: "dXNlcjpwYXNz",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(test.header)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.wantToken, token)
		})
	}
}

func TestAuthMiddleware_Success(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			assert.Equal(t, "valid-token", tokenString)
			return models.Token{UserID: 42}, nil
		},
	}
	h := newTestHandler(auth, nil)

	var seenUserID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, found := utils.GetUserIDFromContext(r.Context())
		require.True(t, found)
		seenUserID = userID
		w.WriteHeader(http.StatusOK)
	})

	rr := executeAuth(h, "Bearer valid-token", next)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(42), seenUserID)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	h := newTestHandler(&mockAuthService{}, nil)

	rr := executeAuth(h, "", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not be called")
	}))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
	h := newTestHandler(auth, nil)

	rr := executeAuth(h, "Bearer expired-token", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not be called")
	}))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
