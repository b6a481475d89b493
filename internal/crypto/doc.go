// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the server-side credential primitives: bcrypt
// password hashing and random refresh-token generation.
package crypto
