// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Transport-level errors. They are mapped to status codes together with the
// service and store errors in errorStatusMap.
var (
	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidParameter is returned for a malformed path or query
	// parameter, e.g. a non-numeric id.
	ErrInvalidParameter = errors.New("invalid request parameter")

	// ErrMissingRefreshToken is returned when neither the body nor the
	// refreshToken query parameter carries a refresh token.
	ErrMissingRefreshToken = errors.New("refresh token is required")

	ErrUnsupportedGrantType = errors.New("unsupported grant_type")

	// ErrInvalidContentEncoding is returned for a gzip-encoded body that
	// cannot be inflated.
	ErrInvalidContentEncoding = errors.New("invalid gzip request body")

	ErrTooManyRequests = errors.New("too many requests")
	ErrRouteNotFound   = errors.New("route not found")
)
