// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-storefront/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken creates a signed HMAC-SHA256 JWT that carries a
// browser session identifier.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the cookie
//   - ID        (jti): the browser session id
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateSessionToken("storefront", sessionID, 24*time.Hour, "secret")
func GenerateSessionToken(issuer, sessionID string, tokenDuration time.Duration, signKey string) (models.SessionToken, error) {
	if issuer == "" || sessionID == "" || tokenDuration <= 0 || signKey == "" {
		return models.SessionToken{}, errors.New("invalid params for generating session token")
	}

	now := time.Now()
	expiresAt := now.Add(tokenDuration)
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		ID:        sessionID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return models.SessionToken{
		SessionID:    sessionID,
		SignedString: tokenString,
		ExpiresAt:    expiresAt,
	}, nil
}

// ValidateAndParseSessionToken verifies the signature, issuer and expiry of
// a session cookie value and returns the session id it carries.
//
// Only HS256 tokens are accepted.
func ValidateAndParseSessionToken(tokenString, signKey, issuer string) (models.SessionToken, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error occurred validating and parsing session token: %w", err)
	}

	if claims.ID == "" {
		return models.SessionToken{}, errors.New("empty session id in token")
	}

	token := models.SessionToken{
		SessionID:    claims.ID,
		SignedString: tokenString,
	}
	if claims.ExpiresAt != nil {
		token.ExpiresAt = claims.ExpiresAt.Time
	}

	return token, nil
}
