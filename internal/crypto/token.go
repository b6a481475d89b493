// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// RefreshTokenBytes is the amount of entropy in every refresh token.
const RefreshTokenBytes = 64

type randomTokenGenerator struct {
	size   int
	source io.Reader
}

// NewTokenGenerator returns a [TokenGenerator] that reads [RefreshTokenBytes]
// bytes from crypto/rand and encodes them as unpadded base64url.
func NewTokenGenerator() TokenGenerator {
	return &randomTokenGenerator{
		size:   RefreshTokenBytes,
		source: rand.Reader,
	}
}

func (g *randomTokenGenerator) Generate() (string, error) {
	buf := make([]byte, g.size)
	if _, err := io.ReadFull(g.source, buf); err != nil {
		return "", fmt.Errorf("error generating random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
