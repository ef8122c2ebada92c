package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It looks accounts up in the "users" table.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// FindUserByLogin retrieves the user whose login matches exactly.
//
// Error handling:
//   - no row or PostgreSQL no_data_found (P0002) → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	row := r.db.QueryRowContext(ctx, findUserByLogin, login)
	return r.scanUser(ctx, row, "*userRepository.FindUserByLogin")
}

// FindUserByID retrieves the user with the given id.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	row := r.db.QueryRowContext(ctx, findUserByID, userID)
	return r.scanUser(ctx, row, "*userRepository.FindUserByID")
}

func (r *userRepository) scanUser(ctx context.Context, row *sql.Row, funcName string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := row.Scan(&user.UserID, &user.Name, &user.Login, &user.PasswordHash, &user.Email, &user.Active)
	if err == nil {
		return user, nil
	}

	if errors.Is(err, sql.ErrNoRows) || postgresError(err) == pgerrcode.NoDataFound {
		return models.User{}, ErrNoUserWasFound
	}

	log.Err(err).Str("func", funcName).Msg("error finding user")
	return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}
