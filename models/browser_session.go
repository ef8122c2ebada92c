// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// View types accepted by the product listing.
const (
	ViewTypeList = "list"
	ViewTypeIcon = "icon"
)

// ViewPreferences is the per-page listing state remembered across requests.
type ViewPreferences struct {
	PageSize  int           `json:"page_size"`
	SortOrder string        `json:"sort_order"`
	ViewType  string        `json:"view_type"`
	Filters   ProductFilter `json:"filters"`
}

// BrowserSession is everything the storefront remembers about one browser.
//
// It is loaded at the start of a request and written back when the request
// completes. Concurrent requests from the same browser overwrite each other
// (last write wins).
type BrowserSession struct {
	// ID is the opaque session identifier carried by the session cookie.
	ID string `json:"id"`

	// RemoteAddr is the client address of the current request. It feeds the
	// secure key and is refreshed on every request, never persisted.
	RemoteAddr string `json:"-"`

	// Token is the identity bound to this browser, nil when logged out.
	Token *AuthToken `json:"token,omitempty"`

	// IdentityExpiresAt is the unix time after which Token is no longer
	// honoured, even if the server-side entry still exists.
	IdentityExpiresAt int64 `json:"identity_expires_at,omitempty"`

	// Expired is set when an identity was dropped because it lapsed or
	// failed validation. It is cleared by the next login.
	Expired bool `json:"expired,omitempty"`

	ShoppingCart *ShoppingCart              `json:"cart,omitempty"`
	Prefs        map[string]ViewPreferences `json:"preferences,omitempty"`
}

// NewBrowserSession returns an empty session with the given id.
func NewBrowserSession(id string) *BrowserSession {
	return &BrowserSession{ID: id}
}

// Cart returns the shopping cart, or nil if none was created yet.
func (s *BrowserSession) Cart() *ShoppingCart {
	return s.ShoppingCart
}

// SetCart replaces the shopping cart. A nil cart discards it.
func (s *BrowserSession) SetCart(cart *ShoppingCart) {
	s.ShoppingCart = cart
}

// Preferences returns the listing preferences stored under key.
func (s *BrowserSession) Preferences(key string) (ViewPreferences, bool) {
	p, ok := s.Prefs[key]
	return p, ok
}

// SetPreferences stores the listing preferences under key.
func (s *BrowserSession) SetPreferences(key string, prefs ViewPreferences) {
	if s.Prefs == nil {
		s.Prefs = make(map[string]ViewPreferences)
	}
	s.Prefs[key] = prefs
}

// ClearVariables drops every identity-scoped value: cart and preferences.
func (s *BrowserSession) ClearVariables() {
	s.ShoppingCart = nil
	s.Prefs = nil
}
