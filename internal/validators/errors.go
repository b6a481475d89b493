// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUsername    = errors.New("username is required")
	ErrEmptyEmail       = errors.New("email is required")
	ErrInvalidEmail     = errors.New("email is not a valid address")
	ErrEmptyPassword    = errors.New("password is required")
	ErrEmptyNewPassword = errors.New("new password is required")
	ErrEmptyName        = errors.New("name is required")
)
