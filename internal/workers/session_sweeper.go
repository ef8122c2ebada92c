// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/metrics"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/robfig/cron/v3"
)

// sweepTimeout bounds a single sweep run.
const sweepTimeout = 30 * time.Second

var ErrInvalidSweepInterval = errors.New("session sweep interval must be positive")

// SessionSweeper periodically removes expired session entries. It replaces
// the per-request sweep when that one is disabled.
type SessionSweeper struct {
	repository store.SessionEntryRepository
	expiration int

	cron    *cron.Cron
	now     func() time.Time
	metrics *metrics.Collector
	logger  *logger.Logger
}

func NewSessionSweeper(
	repository store.SessionEntryRepository,
	expirationSeconds int,
	interval time.Duration,
	collector *metrics.Collector,
	logger *logger.Logger,
) (*SessionSweeper, error) {
	if interval <= 0 {
		return nil, ErrInvalidSweepInterval
	}

	s := &SessionSweeper{
		repository: repository,
		expiration: expirationSeconds,
		now:        time.Now,
		metrics:    collector,
		logger:     logger,
	}

	cronLog := cronLogger{logger: logger}
	s.cron = cron.New(cron.WithChain(
		cron.Recover(cronLog),
		cron.SkipIfStillRunning(cronLog),
	))
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.Sweep); err != nil {
		return nil, fmt.Errorf("error scheduling session sweep: %w", err)
	}

	return s, nil
}

func (s *SessionSweeper) Run() {
	s.logger.Info().Msg("session sweeper started")
	s.cron.Start()
}

func (s *SessionSweeper) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("session sweeper stopped")
}

// Sweep runs one removal pass.
func (s *SessionSweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	removed, err := s.repository.RemoveExpired(ctx, s.expiration, s.now().Unix())
	if err != nil {
		s.logger.Err(err).Str("func", "*SessionSweeper.Sweep").Msg("failed to remove expired session entries")
		return
	}

	s.metrics.RecordSweep(removed)
	if removed > 0 {
		s.logger.Info().Int64("removed", removed).Msg("expired session entries removed")
	}
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	logger *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Err(err).Fields(keysAndValues).Msg(msg)
}
