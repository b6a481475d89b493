// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Errors returned by the authentication and authorization core. A response
// built from them must not reveal which check failed.
var (
	// ErrInvalidCredentials covers an unknown username, an inactive account
	// and a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidOrExpiredToken is returned for a refresh token that is
	// unknown, revoked, expired or owned by a user that is gone.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired refresh token")

	// ErrFeatureDisabled is returned by refresh when refresh tokens are
	// switched off in the configuration.
	ErrFeatureDisabled = errors.New("refresh token is disabled by configuration")

	// ErrUnauthenticated is returned by the guard for a missing, malformed,
	// expired or badly signed access token and for a deleted or inactive
	// user.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when the caller lacks a required role or
	// permission.
	ErrForbidden = errors.New("forbidden")
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrValidation          = errors.New("validation error")
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
