// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/models"
	"github.com/redis/go-redis/v9"
)

// redisSessionStorage keeps one JSON document per browser session under
// "<prefix>:<session id>". Every save refreshes the TTL.
type redisSessionStorage struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *logger.Logger
}

// NewRedisClient opens a client for cfg and checks it with PING.
func NewRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisClient").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrSessionStorage, err)
	}
	log.Info().Str("func", "NewRedisClient").Msg("connected to redis successfully")

	return client, nil
}

func NewBrowserSessionStorage(client *redis.Client, prefix string, ttl time.Duration, logger *logger.Logger) BrowserSessionStorage {
	logger.Debug().Msg("creating browser session storage")
	return &redisSessionStorage{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *redisSessionStorage) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// Load returns the stored session or [ErrBrowserSessionNotFound].
func (r *redisSessionStorage) Load(ctx context.Context, sessionID string) (*models.BrowserSession, error) {
	log := logger.FromContext(ctx)

	data, err := r.client.Get(ctx, r.sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBrowserSessionNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*redisSessionStorage.Load").Msg("failed to load browser session")
		return nil, fmt.Errorf("%w: %w", ErrSessionStorage, err)
	}

	var session models.BrowserSession
	if err := json.Unmarshal(data, &session); err != nil {
		log.Err(err).Str("func", "*redisSessionStorage.Load").Msg("failed to unmarshal browser session")
		return nil, fmt.Errorf("%w: failed to unmarshal session: %w", ErrSessionStorage, err)
	}
	session.ID = sessionID

	return &session, nil
}

func (r *redisSessionStorage) Save(ctx context.Context, session *models.BrowserSession) error {
	log := logger.FromContext(ctx)

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal session: %w", ErrSessionStorage, err)
	}

	if err := r.client.Set(ctx, r.sessionKey(session.ID), data, r.ttl).Err(); err != nil {
		log.Err(err).Str("func", "*redisSessionStorage.Save").Msg("failed to save browser session")
		return fmt.Errorf("%w: %w", ErrSessionStorage, err)
	}

	return nil
}

func (r *redisSessionStorage) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.sessionKey(sessionID)).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionStorage.Delete").Msg("failed to delete browser session")
		return fmt.Errorf("%w: %w", ErrSessionStorage, err)
	}

	return nil
}
