// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrInvalidRequestBody is returned when a JSON request body cannot be
	// decoded into the expected payload.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrInvalidPathParameter is returned when a numeric URL parameter such as
	// {productID} cannot be parsed.
	ErrInvalidPathParameter = errors.New("invalid path parameter")

	// ErrNoBrowserSession is returned by handlers mounted outside withSession.
	ErrNoBrowserSession = errors.New("no browser session in request context")
)

// msgLoggedOut is the body message of every 401 issued by requireIdentity.
const msgLoggedOut = "user is logged out"
