// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/internal/utils"
	"github.com/MKhiriev/go-storefront/models"
)

const sessionCookieName = "storefront_session"

// withSession attaches the browser session to the request.
//
// The session id travels in a signed cookie. A missing or invalid cookie
// starts a fresh session and issues a new cookie. Once loaded, the identity
// bound to the session is validated with [service.AuthManager.HasIdentity];
// on success the user id is stored under [utils.UserIDCtxKey].
//
// The session is written back after the downstream handler returns, so
// concurrent requests of the same browser overwrite each other.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		sess, err := h.loadSession(ctx, w, r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		sess.RemoteAddr = remoteHost(r)

		hasIdentity, err := h.services.AuthManager.HasIdentity(ctx, sess)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx = utils.WithBrowserSession(ctx, sess)
		if hasIdentity {
			ctx = context.WithValue(ctx, utils.UserIDCtxKey, sess.Token.UserID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))

		// the request context may already be cancelled by the timeout middleware
		if err := h.sessions.Save(context.WithoutCancel(ctx), sess); err != nil {
			log.Err(err).Str("session_id", sess.ID).Msg("failed to save browser session")
		}
	})
}

// loadSession resolves the session named by the cookie. An unknown id keeps
// the cookie and starts from an empty session.
func (h *Handler) loadSession(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.BrowserSession, error) {
	log := logger.FromRequest(r)

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return h.newSession(w)
	}

	token, err := utils.ValidateAndParseSessionToken(cookie.Value, h.signKey, h.issuer)
	if err != nil {
		log.Debug().Err(err).Msg("session cookie rejected")
		return h.newSession(w)
	}

	sess, err := h.sessions.Load(ctx, token.SessionID)
	if errors.Is(err, store.ErrBrowserSessionNotFound) {
		return models.NewBrowserSession(token.SessionID), nil
	}
	if err != nil {
		return nil, err
	}

	return sess, nil
}

func (h *Handler) newSession(w http.ResponseWriter) (*models.BrowserSession, error) {
	sessionID := h.ids.Generate()

	token, err := utils.GenerateSessionToken(h.issuer, sessionID, h.cookieLifetime, h.signKey)
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return models.NewBrowserSession(sessionID), nil
}

// remoteHost strips the port from the client address.
func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// loggedOutResponse is the body of a 401 issued by requireIdentity.
type loggedOutResponse struct {
	Message string `json:"message"`
	Expired bool   `json:"expired"`
}

// requireIdentity rejects requests whose session carries no valid identity.
// Expired tells the client whether an identity was just dropped.
func (h *Handler) requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		var expired bool
		if sess, ok := utils.GetBrowserSessionFromContext(r.Context()); ok {
			expired = h.services.AuthManager.Expired(sess)
		}

		logger.FromRequest(r).Info().Bool("expired", expired).Msg("identity required")
		utils.WriteJSON(w, loggedOutResponse{Message: msgLoggedOut, Expired: expired}, http.StatusUnauthorized)
	})
}
