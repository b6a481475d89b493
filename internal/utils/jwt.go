// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-admin-auth/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidJWTParams is returned by [NewJWTCodec] for an empty key or issuer
// or a non-positive lifetime.
var ErrInvalidJWTParams = errors.New("invalid params for JWT codec")

// JWTCodec signs and verifies HMAC-SHA256 access tokens.
//
// The encoded claim set is [models.AccessClaims]: sub, username, roles, iss,
// iat and exp. Verification checks the signature algorithm, the signature,
// the issuer and the expiry; there is no leeway.
type JWTCodec struct {
	signKey  []byte
	issuer   string
	lifetime time.Duration
	now      func() time.Time
}

// NewJWTCodec constructs a codec. The sign key must be kept confidential
// and is never logged.
//
// Example usage:
//
//	codec, err := utils.NewJWTCodec("secret", "go-admin-auth", time.Hour)
func NewJWTCodec(signKey, issuer string, lifetime time.Duration) (*JWTCodec, error) {
	if signKey == "" || issuer == "" || lifetime <= 0 {
		return nil, ErrInvalidJWTParams
	}

	return &JWTCodec{
		signKey:  []byte(signKey),
		issuer:   issuer,
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

// Issue builds and signs the claim set for a user, stamping iss, iat and exp
// from the codec configuration.
func (c *JWTCodec) Issue(userID int64, username string, roles []string) (models.AccessToken, error) {
	now := c.now()
	expiresAt := now.Add(c.lifetime)

	claims := models.AccessClaims{
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := c.Encode(claims)
	if err != nil {
		return models.AccessToken{}, err
	}

	return models.AccessToken{SignedString: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Encode signs claims as they are. Callers are responsible for exp and iss.
func (c *JWTCodec) Encode(claims models.AccessClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(c.signKey)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return signed, nil
}

// Decode verifies tokenString and returns its claims.
//
// Validation includes:
//   - the alg header must be HS256
//   - signature verification with the codec key
//   - iss must equal the codec issuer
//   - exp must be present and in the future
//   - sub must parse as an int64 user id
func (c *JWTCodec) Decode(tokenString string) (models.AccessClaims, error) {
	claims := models.AccessClaims{}

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return c.signKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return models.AccessClaims{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if _, err := claims.GetUserID(); err != nil {
		return models.AccessClaims{}, err
	}

	return claims, nil
}

// ParseBearerToken extracts the credential from an "Authorization: Bearer x"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "bearer") || token == "" || strings.Contains(token, " ") {
		return "", errors.New("invalid authorization header")
	}
	return token, nil
}
