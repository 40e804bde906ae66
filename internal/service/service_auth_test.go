package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/kotobadev/kotoba-sync/internal/config"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/mock"
	"github.com/kotobadev/kotoba-sync/internal/store"
	"github.com/kotobadev/kotoba-sync/models"
)

func newTestAuthService(t *testing.T) (AuthService, *mock.MockUserRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)

	service := NewAuthService(users, config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "kotoba-sync",
		TokenDuration: time.Hour,
	}, logger.Nop())

	return service, users
}

func TestRegisterUser_HashesPassword(t *testing.T) {
	service, users := newTestAuthService(t)

	users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			// The plaintext must never reach the repository.
			assert.Empty(t, user.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
			user.UserID = 1
			return user, nil
		})

	registered, err := service.RegisterUser(context.Background(), models.User{Login: "yuki", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.UserID)
}

func TestRegisterUser_InvalidInput(t *testing.T) {
	service, _ := newTestAuthService(t)

	_, err := service.RegisterUser(context.Background(), models.User{Login: "yuki"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = service.RegisterUser(context.Background(), models.User{Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRegisterUser_LoginTaken(t *testing.T) {
	service, users := newTestAuthService(t)

	users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrLoginAlreadyExists)

	_, err := service.RegisterUser(context.Background(), models.User{Login: "yuki", Password: "pw"})
	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

func TestLogin(t *testing.T) {
	service, users := newTestAuthService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := models.User{UserID: 1, Login: "yuki", PasswordHash: string(hash)}

	users.EXPECT().FindUserByLogin(gomock.Any(), gomock.Any()).Return(stored, nil).Times(2)

	found, err := service.Login(context.Background(), models.User{Login: "yuki", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.UserID)

	_, err = service.Login(context.Background(), models.User{Login: "yuki", Password: "wrong"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_UnknownUser(t *testing.T) {
	service, users := newTestAuthService(t)

	users.EXPECT().
		FindUserByLogin(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrNoUserWasFound)

	_, err := service.Login(context.Background(), models.User{Login: "ghost", Password: "pw"})
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestTokenRoundTrip(t *testing.T) {
	service, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := service.CreateToken(ctx, models.User{UserID: 42, Login: "yuki"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := service.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestParseToken_Invalid(t *testing.T) {
	service, _ := newTestAuthService(t)

	_, err := service.ParseToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_WrongIssuer(t *testing.T) {
	service, _ := newTestAuthService(t)

	ctrl := gomock.NewController(t)
	other := NewAuthService(mock.NewMockUserRepository(ctrl), config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "somebody-else",
		TokenDuration: time.Hour,
	}, logger.Nop())

	token, err := other.CreateToken(context.Background(), models.User{UserID: 42})
	require.NoError(t, err)

	_, err = service.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
