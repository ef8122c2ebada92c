// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/models"
)

// sessionEntryRepository stores the server-side half of authenticated
// sessions in the "sessions" table, keyed by secure key.
type sessionEntryRepository struct {
	*DB
	logger *logger.Logger
}

func NewSessionEntryRepository(db *DB, logger *logger.Logger) SessionEntryRepository {
	logger.Debug().Msg("creating session entry repository")
	return &sessionEntryRepository{
		DB:     db,
		logger: logger,
	}
}

// Save inserts the entry or, when the hash already exists, overwrites its
// owner and timestamp.
func (s *sessionEntryRepository) Save(ctx context.Context, entry models.SessionEntry) error {
	log := logger.FromContext(ctx)

	if _, err := s.DB.ExecContext(ctx, saveSessionEntry, entry.SessionHash, entry.UserID, entry.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "*sessionEntryRepository.Save").
			Int64("user_id", entry.UserID).
			Msg("failed to save session entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sessionEntryRepository) Find(ctx context.Context, sessionHash string) (models.SessionEntry, error) {
	row := s.DB.QueryRowContext(ctx, findSessionEntry, sessionHash)
	return s.scanEntry(ctx, row, "*sessionEntryRepository.Find")
}

// FindByUserID returns any one entry of the user.
func (s *sessionEntryRepository) FindByUserID(ctx context.Context, userID int64) (models.SessionEntry, error) {
	row := s.DB.QueryRowContext(ctx, findSessionEntryByUserID, userID)
	return s.scanEntry(ctx, row, "*sessionEntryRepository.FindByUserID")
}

// Remove deletes the entry and reports whether anything was deleted.
func (s *sessionEntryRepository) Remove(ctx context.Context, sessionHash string) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := s.DB.ExecContext(ctx, removeSessionEntry, sessionHash)
	if err != nil {
		log.Err(err).Str("func", "*sessionEntryRepository.Remove").Msg("failed to remove session entry")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*sessionEntryRepository.Remove").Msg("failed to read affected rows")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

// RemoveExpired deletes every entry with created_at + expirationSeconds < now
// and returns how many were deleted.
func (s *sessionEntryRepository) RemoveExpired(ctx context.Context, expirationSeconds int, now int64) (int64, error) {
	log := logger.FromContext(ctx)

	if expirationSeconds < 0 {
		return 0, ErrInvalidExpiration
	}

	result, err := s.DB.ExecContext(ctx, removeExpiredSessionEntries, int64(expirationSeconds), now)
	if err != nil {
		log.Err(err).Str("func", "*sessionEntryRepository.RemoveExpired").Msg("failed to sweep expired session entries")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*sessionEntryRepository.RemoveExpired").Msg("failed to read affected rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if removed > 0 {
		log.Debug().
			Str("func", "*sessionEntryRepository.RemoveExpired").
			Int64("removed", removed).
			Msg("expired session entries swept")
	}

	return removed, nil
}

func (s *sessionEntryRepository) scanEntry(ctx context.Context, row *sql.Row, funcName string) (models.SessionEntry, error) {
	var entry models.SessionEntry
	err := row.Scan(&entry.SessionHash, &entry.UserID, &entry.CreatedAt)
	if err == nil {
		return entry, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return models.SessionEntry{}, ErrSessionEntryNotFound
	}

	logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to find session entry")
	return models.SessionEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}
