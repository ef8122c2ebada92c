package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/models"
)

type addressRepository struct {
	*DB
	logger *logger.Logger
}

func NewAddressRepository(db *DB, logger *logger.Logger) AddressRepository {
	logger.Debug().Msg("creating address repository")
	return &addressRepository{
		DB:     db,
		logger: logger,
	}
}

// FindMainAddress returns the address flagged main for the user.
func (a *addressRepository) FindMainAddress(ctx context.Context, userID int64) (models.UserAddress, error) {
	row := a.DB.QueryRowContext(ctx, findMainAddress, userID)
	return a.scanAddress(ctx, row, "*addressRepository.FindMainAddress")
}

func (a *addressRepository) FindAddress(ctx context.Context, userID, addressID int64) (models.UserAddress, error) {
	row := a.DB.QueryRowContext(ctx, findAddress, userID, addressID)
	return a.scanAddress(ctx, row, "*addressRepository.FindAddress")
}

// SaveAddress inserts the address when its ID is zero and updates it
// otherwise. It returns the address id.
func (a *addressRepository) SaveAddress(ctx context.Context, address models.UserAddress) (int64, error) {
	log := logger.FromContext(ctx)

	sqlStr, args, err := buildSaveAddressQuery(ctx, address)
	if err != nil {
		log.Err(err).Str("func", "*addressRepository.SaveAddress").Msg("failed to create query")
		return 0, err
	}

	var id int64
	err = a.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrAddressNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*addressRepository.SaveAddress").
			Int64("user_id", address.UserID).
			Msg("failed to save address")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return id, nil
}

func (a *addressRepository) scanAddress(ctx context.Context, row *sql.Row, funcName string) (models.UserAddress, error) {
	var address models.UserAddress
	err := row.Scan(
		&address.ID,
		&address.UserID,
		&address.Main,
		&address.Street,
		&address.Number,
		&address.Complement,
		&address.Neighborhood,
		&address.City,
		&address.State,
		&address.Cep,
	)
	if err == nil {
		return address, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserAddress{}, ErrAddressNotFound
	}

	logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to find address")
	return models.UserAddress{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}
