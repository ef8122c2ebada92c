// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// SecureKey derives the tamper-evidence key of an auth token.
//
// The key is the hex-encoded SHA1 digest of login, client address, issue
// time (unix seconds) and display name, concatenated in that order. Changing
// any of the inputs without recomputing the key makes validation fail.
//
// Example usage:
//
//	key := utils.SecureKey("john", "10.0.0.1", time.Now().Unix(), "John")
func SecureKey(login, remoteAddr string, issuedAt int64, name string) string {
	sum := sha1.Sum([]byte(login + remoteAddr + strconv.FormatInt(issuedAt, 10) + name))
	return hex.EncodeToString(sum[:])
}

// HashPassword returns the bcrypt hash of plain using the given cost.
// A cost outside bcrypt's accepted range falls back to bcrypt.DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt hash with a plain password in constant time.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
