// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher turns plaintext passwords into one-way hashes and checks
// candidates against them. Implementations must compare in constant time
// and must never log or retain the plaintext.
type PasswordHasher interface {
	// Hash returns a self-describing hash (algorithm, cost and salt included)
	// suitable for storing in users.password_hash.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. A malformed hash is
	// reported as a mismatch.
	Verify(plaintext, hash string) bool
}

// TokenGenerator produces opaque, URL-safe random strings used as refresh
// tokens.
type TokenGenerator interface {
	Generate() (string, error)
}
