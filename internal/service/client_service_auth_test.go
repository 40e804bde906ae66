package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/mock"
	"github.com/kotobadev/kotoba-sync/models"
)

func newTestAgentAuthService(t *testing.T) (AgentAuthService, *mock.MockServerAdapter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	return NewAgentAuthService(serverAdapter, logger.Nop()), serverAdapter
}

func TestAgentAuth_RegisterReturnsAssignedUserID(t *testing.T) {
	svc, serverAdapter := newTestAgentAuthService(t)
	ctx := context.Background()

	serverAdapter.EXPECT().
		Register(ctx, models.User{Login: "yuki", Password: "correct horse"}).
		Return(models.Token{SignedString: "jwt", UserID: 42}, nil)

	userID, err := svc.Register(ctx, "yuki", "correct horse")

	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestAgentAuth_LoginReturnsUserID(t *testing.T) {
	svc, serverAdapter := newTestAgentAuthService(t)
	ctx := context.Background()

	serverAdapter.EXPECT().
		Login(ctx, models.User{Login: "yuki", Password: "correct horse"}).
		Return(models.Token{SignedString: "jwt", UserID: 7}, nil)

	userID, err := svc.Login(ctx, "yuki", "correct horse")

	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestAgentAuth_RejectsEmptyCredentials(t *testing.T) {
	svc, _ := newTestAgentAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "  ", "secret")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Register(ctx, "yuki", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Login(ctx, "", "secret")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAgentAuth_AdapterErrorPropagates(t *testing.T) {
	svc, serverAdapter := newTestAgentAuthService(t)
	ctx := context.Background()

	serverAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.Token{}, assert.AnError)

	_, err := svc.Login(ctx, "yuki", "wrong")

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
