// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/metrics"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/internal/utils"
	"github.com/MKhiriev/go-storefront/models"
)

// Messages attached to failed authentication results.
const (
	msgIdentityNotFound  = "a record with the supplied identity could not be found"
	msgCredentialInvalid = "supplied credential is invalid"
	msgUserInactive      = "user is inactive"
	msgGeneralFailure    = "authentication failed, try again later"
)

// authManager is the concrete implementation of AuthManager.
//
// The identity lives in two places: the AuthToken inside the browser session
// and a SessionEntry row keyed by the token's secure key. A request is
// authenticated only while both agree.
type authManager struct {
	userRepository         store.UserRepository
	sessionEntryRepository store.SessionEntryRepository

	// timeout is the identity lifetime in seconds. It is atomic because
	// SetSessionTimeout may run concurrently with requests.
	timeout atomic.Int64

	// expiration is the age in seconds after which a session entry is swept.
	expiration int

	// requestSweep enables the expired-entry sweep on StartSession and
	// HasIdentity.
	requestSweep bool

	now     func() time.Time
	metrics *metrics.Collector
	logger  *logger.Logger
}

// NewAuthManager constructs the AuthManager. One instance serves the whole
// process; per-browser state is passed to every call.
func NewAuthManager(
	userRepository store.UserRepository,
	sessionEntryRepository store.SessionEntryRepository,
	cfg config.Session,
	collector *metrics.Collector,
	logger *logger.Logger,
) AuthManager {
	a := &authManager{
		userRepository:         userRepository,
		sessionEntryRepository: sessionEntryRepository,
		expiration:             cfg.ExpirationSeconds,
		requestSweep:           !cfg.DisableRequestSweep,
		now:                    time.Now,
		metrics:                collector,
		logger:                 logger,
	}
	a.timeout.Store(int64(cfg.TimeoutSeconds))

	return a
}

// Authenticate checks login and password and starts a session on success.
//
// The inactive check runs only after the password matched, so an inactive
// account is never revealed to someone who does not know its password.
func (a *authManager) Authenticate(ctx context.Context, sess *models.BrowserSession, login, password string) models.AuthResult {
	result := a.authenticate(ctx, sess, login, password)
	a.metrics.RecordAuthResult(result.Code.String())

	return result
}

func (a *authManager) authenticate(ctx context.Context, sess *models.BrowserSession, login, password string) models.AuthResult {
	log := logger.FromContext(ctx)

	if login == "" {
		return failure(models.AuthIdentityNotFound, msgIdentityNotFound)
	}

	user, err := a.userRepository.FindUserByLogin(ctx, login)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("login", login).Msg("login attempt for unknown user")
		return failure(models.AuthIdentityNotFound, msgIdentityNotFound)
	}
	if err != nil {
		log.Err(err).Str("login", login).Msg("user search by login failed")
		return failure(models.AuthGeneralFailure, msgGeneralFailure)
	}

	if !utils.VerifyPassword(user.PasswordHash, password) {
		log.Info().Int64("id", user.UserID).Msg("wrong password")
		return failure(models.AuthCredentialInvalid, msgCredentialInvalid)
	}

	if !user.Active {
		log.Info().Int64("id", user.UserID).Msg("inactive user tried to log in")
		return failure(models.AuthInactive, msgUserInactive)
	}

	if _, err := a.StartSession(ctx, sess, user); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("failed to start session")
		return failure(models.AuthGeneralFailure, msgGeneralFailure)
	}

	return models.AuthResult{Code: models.AuthSuccess, User: &user}
}

func failure(code models.AuthCode, message string) models.AuthResult {
	return models.AuthResult{Code: code, Messages: []string{message}}
}

// StartSession binds user to sess and records the matching session entry.
func (a *authManager) StartSession(ctx context.Context, sess *models.BrowserSession, user models.User) (models.AuthToken, error) {
	if sess == nil || user.UserID == 0 {
		return models.AuthToken{}, ErrInvalidDataProvided
	}

	now := a.now().Unix()
	token := models.AuthToken{
		UserID:    user.UserID,
		Login:     user.Login,
		Name:      user.Name,
		SecureKey: utils.SecureKey(user.Login, sess.RemoteAddr, now, user.Name),
		IssuedAt:  now,
	}

	if err := a.sweep(ctx, now); err != nil {
		return models.AuthToken{}, err
	}

	err := a.sessionEntryRepository.Save(ctx, models.SessionEntry{
		SessionHash: token.SecureKey,
		UserID:      user.UserID,
		CreatedAt:   now,
	})
	if err != nil {
		return models.AuthToken{}, fmt.Errorf("session entry was not saved: %w", err)
	}

	sess.Token = &token
	sess.IdentityExpiresAt = now + a.timeout.Load()
	sess.Expired = false

	return token, nil
}

// HasIdentity validates the identity of sess on both sides: the client token
// must be intact and unexpired, and a session entry of the same user must
// exist for its secure key. A valid identity is refreshed; an invalid one is
// cleared and marks the session expired.
func (a *authManager) HasIdentity(ctx context.Context, sess *models.BrowserSession) (bool, error) {
	log := logger.FromContext(ctx)

	if sess == nil || sess.Token == nil {
		return false, nil
	}

	token := sess.Token
	now := a.now().Unix()

	if now > sess.IdentityExpiresAt {
		log.Debug().Int64("user_id", token.UserID).Msg("identity lifetime lapsed")
		return false, a.expire(ctx, sess)
	}

	if utils.SecureKey(token.Login, sess.RemoteAddr, token.IssuedAt, token.Name) != token.SecureKey {
		log.Warn().Int64("user_id", token.UserID).Str("remote_addr", sess.RemoteAddr).Msg("secure key mismatch")
		return false, a.expire(ctx, sess)
	}

	if err := a.sweep(ctx, now); err != nil {
		return false, err
	}

	entry, err := a.sessionEntryRepository.Find(ctx, token.SecureKey)
	if errors.Is(err, store.ErrSessionEntryNotFound) {
		log.Debug().Int64("user_id", token.UserID).Msg("session entry is gone")
		return false, a.expire(ctx, sess)
	}
	if err != nil {
		return false, fmt.Errorf("session entry lookup failed: %w", err)
	}

	if entry.UserID != token.UserID {
		log.Warn().Int64("user_id", token.UserID).Int64("entry_user_id", entry.UserID).Msg("session entry belongs to another user")
		return false, a.expire(ctx, sess)
	}

	entry.CreatedAt = now
	if err := a.sessionEntryRepository.Save(ctx, entry); err != nil {
		return false, fmt.Errorf("session entry was not refreshed: %w", err)
	}
	sess.IdentityExpiresAt = now + a.timeout.Load()

	return true, nil
}

// Expired reports whether the last identity of sess was dropped. The flag
// is cleared by the next successful StartSession.
func (a *authManager) Expired(sess *models.BrowserSession) bool {
	return sess != nil && sess.Expired
}

// ClearIdentity logs the session out: the session entry of the current
// secure key is removed and the token, cart and preferences are wiped.
func (a *authManager) ClearIdentity(ctx context.Context, sess *models.BrowserSession) error {
	if sess == nil {
		return nil
	}

	var err error
	if sess.Token != nil && sess.Token.SecureKey != "" {
		if _, removeErr := a.sessionEntryRepository.Remove(ctx, sess.Token.SecureKey); removeErr != nil {
			err = fmt.Errorf("session entry was not removed: %w", removeErr)
		}
	}

	sess.Token = nil
	sess.IdentityExpiresAt = 0
	sess.ClearVariables()

	return err
}

// CurrentUser loads the account behind the identity of sess.
func (a *authManager) CurrentUser(ctx context.Context, sess *models.BrowserSession) (models.User, error) {
	if sess == nil || sess.Token == nil {
		return models.User{}, ErrNoIdentity
	}

	user, err := a.userRepository.FindUserByID(ctx, sess.Token.UserID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// SetSessionTimeout changes the identity lifetime applied from now on.
func (a *authManager) SetSessionTimeout(seconds int) error {
	if seconds < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSessionTimeout, seconds)
	}

	a.timeout.Store(int64(seconds))
	return nil
}

// ParseSessionTimeout converts a raw timeout value to seconds.
func ParseSessionTimeout(raw string) (int, error) {
	seconds, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number of seconds", ErrInvalidSessionTimeout, raw)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSessionTimeout, seconds)
	}

	return seconds, nil
}

// expire clears the identity after a failed check and flags the session.
func (a *authManager) expire(ctx context.Context, sess *models.BrowserSession) error {
	err := a.ClearIdentity(ctx, sess)
	sess.Expired = true

	return err
}

func (a *authManager) sweep(ctx context.Context, now int64) error {
	if !a.requestSweep {
		return nil
	}

	removed, err := a.sessionEntryRepository.RemoveExpired(ctx, a.expiration, now)
	if err != nil {
		return fmt.Errorf("expired session entries were not removed: %w", err)
	}
	if removed > 0 {
		logger.FromContext(ctx).Debug().Int64("removed", removed).Msg("expired session entries swept")
	}
	a.metrics.RecordSweep(removed)

	return nil
}
