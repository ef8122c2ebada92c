// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SessionEntry is the server-side record that mirrors an active [AuthToken].
// It is keyed by the token's secure key, so deleting the row invalidates the
// browser session regardless of what the client still holds.
type SessionEntry struct {
	// SessionHash is the secure key of the token this entry belongs to.
	SessionHash string `json:"session_hash"`

	// UserID is the owner of the session.
	UserID int64 `json:"user_id"`

	// CreatedAt is the unix timestamp (seconds) of the last validated request.
	CreatedAt int64 `json:"created_at"`
}

// IsExpired reports whether the entry is older than expirationSeconds at now.
func (e SessionEntry) IsExpired(expirationSeconds, now int64) bool {
	return e.CreatedAt+expirationSeconds < now
}

// AuthToken is the identity record kept in the browser session.
//
// SecureKey binds the remaining fields to the client address; it is
// recomputed on every request and any mismatch is treated as tampering.
type AuthToken struct {
	UserID    int64  `json:"user_id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	SecureKey string `json:"secure_key"`
	IssuedAt  int64  `json:"issued_at"`
}

// AuthCode is the closed set of authentication outcomes.
type AuthCode int

const (
	// AuthGeneralFailure reports an infrastructure failure during authentication.
	AuthGeneralFailure AuthCode = iota
	// AuthSuccess reports that the credentials matched an active user.
	AuthSuccess
	// AuthIdentityNotFound reports that no user has the given login.
	AuthIdentityNotFound
	// AuthCredentialInvalid reports a password mismatch.
	AuthCredentialInvalid
	// AuthInactive reports valid credentials of a deactivated user.
	AuthInactive
)

// String returns the wire name of the code.
func (c AuthCode) String() string {
	switch c {
	case AuthSuccess:
		return "SUCCESS"
	case AuthIdentityNotFound:
		return "IDENTITY_NOT_FOUND"
	case AuthCredentialInvalid:
		return "CREDENTIAL_INVALID"
	case AuthInactive:
		return "INACTIVE"
	default:
		return "GENERAL_FAILURE"
	}
}

// MarshalText lets the code appear by name in JSON bodies.
func (c AuthCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// AuthResult is returned by authentication attempts.
type AuthResult struct {
	Code     AuthCode `json:"code"`
	User     *User    `json:"user,omitempty"`
	Messages []string `json:"messages,omitempty"`
}

// IsValid reports whether the attempt succeeded.
func (r AuthResult) IsValid() bool {
	return r.Code == AuthSuccess
}

// AuthStatus describes the identity attached to the current browser session.
type AuthStatus struct {
	HasIdentity bool   `json:"has_identity"`
	Expired     bool   `json:"expired"`
	UserID      int64  `json:"user_id,omitempty"`
	Login       string `json:"login,omitempty"`
	Name        string `json:"name,omitempty"`
}
