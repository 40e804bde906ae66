package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kotobadev/kotoba-sync/internal/config"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/store"
	"github.com/kotobadev/kotoba-sync/internal/utils"
	"github.com/kotobadev/kotoba-sync/models"
)

// authService is the concrete implementation of AuthService. It handles user
// registration, credential verification, and the JWT token lifecycle using a
// UserRepository for persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new user account. The plaintext password is hashed
// with bcrypt before it reaches the repository; the plaintext never leaves
// this method.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository call fails (e.g. login
//     already taken, see store.ErrLoginAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("failed to hash password")
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}
	user.Password = ""
	user.PasswordHash = string(hash)

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user by comparing the supplied password
// against the stored bcrypt hash.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. user not
//     found, see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not match.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(user.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Warn().
				Int64("id", foundUser.UserID).
				Str("login", foundUser.Login).
				Msg("wrong password")
			return models.User{}, ErrWrongPassword
		}
		return models.User{}, fmt.Errorf("comparing password hash: %w", err)
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
