// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the go-admin-auth HTTP API.
//
// [AuthServerAdapter] hides the REST details from the command-line client:
// it unwraps the response envelope, keeps the current token pair and maps
// HTTP statuses to the sentinel errors in errors.go.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-admin-auth/models"
)

// AuthServerAdapter talks to a go-admin-auth server.
type AuthServerAdapter interface {
	// SetTokens replaces the held token pair. Either value may be empty.
	SetTokens(accessToken, refreshToken string)

	// Tokens returns the held access and refresh tokens.
	Tokens() (accessToken, refreshToken string)

	// Login exchanges credentials for a token pair and keeps it.
	Login(ctx context.Context, username, password string) (models.TokenPair, error)

	// Refresh rotates refreshToken, or the held one when empty, and keeps
	// the new pair.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// Revoke revokes refreshToken, or the held one when empty.
	Revoke(ctx context.Context, refreshToken string) error

	// RevokeAll revokes every refresh token of the caller.
	RevokeAll(ctx context.Context) (int64, error)

	// Me returns the profile of the caller.
	Me(ctx context.Context) (models.UserDTO, error)

	// MyPermissions returns the effective permission names of the caller.
	MyPermissions(ctx context.Context) ([]string, error)

	// Version returns the server version information.
	Version(ctx context.Context) (models.VersionInfo, error)
}
