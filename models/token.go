package models

import "time"

// SessionToken is the signed form of a browser session identifier as it
// travels in the session cookie.
type SessionToken struct {
	// SessionID is the "jti" claim: the key of the browser session in the
	// session storage.
	SessionID string

	// SignedString is the compact JWS representation placed in the cookie.
	SignedString string

	// ExpiresAt mirrors the "exp" claim.
	ExpiresAt time.Time
}
