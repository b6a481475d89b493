// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RefreshToken is a persisted, revocable credential that can be exchanged
// for a new access token. Rows are never updated except to mark them revoked.
type RefreshToken struct {
	TokenID int64
	UserID  int64

	// Token is the opaque random string handed to the client.
	Token string

	ExpiresAt time.Time

	// RevokedAt is set together with IsRevoked.
	RevokedAt *time.Time
	IsRevoked bool

	// ReplacedByToken points to the token minted when this one was rotated.
	ReplacedByToken *string

	CreatedAt time.Time
}

// TableName returns the name of the database table
// associated with the RefreshToken model.
func (t RefreshToken) TableName() string {
	return "refresh_tokens"
}

// IsValid reports whether the token can still be exchanged at the given
// moment. A token expiring exactly at now is already invalid.
func (t RefreshToken) IsValid(now time.Time) bool {
	return !t.IsRevoked && t.ExpiresAt.After(now)
}
