package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
type userRepository struct {
	*DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateUser implements [UserRepository]. Only the bcrypt hash is persisted;
// the plaintext Password field never reaches the database.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var created models.User
	row := r.DB.QueryRowContext(ctx, createUser, user.Login, user.Name, user.PasswordHash)

	err := row.Scan(&created.UserID, &created.Login, &created.Name, &created.PasswordHash, &created.CreatedAt)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Err(err).
			Str("func", "*userRepository.CreateUser").
			Str("login", user.Login).
			Msg("failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// FindUserByLogin implements [UserRepository].
func (r *userRepository) FindUserByLogin(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.DB.QueryRowContext(ctx, findUserByLogin, user.Login)

	err := row.Scan(&found.UserID, &found.Login, &found.Name, &found.PasswordHash, &found.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.FindUserByLogin").
			Str("login", user.Login).
			Msg("failed to scan user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}
