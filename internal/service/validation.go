// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-admin-auth/internal/validators"
)

var requestValidator = validators.NewRequestValidator()

// validateRequest runs the request validator and wraps any failure in
// ErrValidation so that handlers answer 400.
func validateRequest(ctx context.Context, obj any, fields ...string) error {
	if err := requestValidator.Validate(ctx, obj, fields...); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
