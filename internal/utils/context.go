// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, session cookie signing, secure-key and password hashing
// and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-storefront/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the user identifier in the context.
// Used together with GetUserIDFromContext for type-safe retrieval
// of the user ID from context.Context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, int64(42))
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true: value is found and has the correct int64 type
//   - ok == false: value is missing or has an unexpected type
//
// Example usage:
//
//	userID, ok := utils.GetUserIDFromContext(ctx)
//	if !ok {
//	    // handle missing user in context
//	}
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// BrowserSessionCtxKey is the key under which the session middleware stores
// the current [models.BrowserSession].
var BrowserSessionCtxKey = contextKey("browserSession")

// WithBrowserSession returns a copy of ctx carrying sess.
func WithBrowserSession(ctx context.Context, sess *models.BrowserSession) context.Context {
	return context.WithValue(ctx, BrowserSessionCtxKey, sess)
}

// GetBrowserSessionFromContext retrieves the browser session stored by
// [WithBrowserSession]. ok is false when no session is present.
func GetBrowserSessionFromContext(ctx context.Context) (*models.BrowserSession, bool) {
	sess, ok := ctx.Value(BrowserSessionCtxKey).(*models.BrowserSession)
	return sess, ok && sess != nil
}
