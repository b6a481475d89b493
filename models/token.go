// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeBearer is the token_type returned with every issued access token.
const TokenTypeBearer = "bearer"

// AccessClaims is the claim set of a signed access token.
//
// The Roles claim reflects the user's roles at issuance time only.
// Authorization decisions always re-read roles from the store.
type AccessClaims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`

	// RegisteredClaims provides sub, exp, iat and iss as defined by RFC 7519.
	jwt.RegisteredClaims
}

// GetUserID parses the "sub" claim as a base-10 int64.
func (c AccessClaims) GetUserID() (int64, error) {
	if c.Subject == "" {
		return 0, fmt.Errorf("error extracting UserID from token: empty subject")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// AccessToken is a freshly signed access token together with its expiry.
type AccessToken struct {
	SignedString string
	ExpiresAt    time.Time
}

// String returns the compact JWS serialization of the token.
func (t AccessToken) String() string {
	return t.SignedString
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LoginRequest is the JSON payload of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest carries a refresh token in a JSON body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
