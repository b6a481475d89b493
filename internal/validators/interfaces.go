// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks incoming request payloads before the services
// touch storage.
//
// A Validator accepts any supported request value and, optionally, the names
// of the fields to check. Without field names every field of the payload is
// checked. The first failing rule is returned as one of the sentinel errors
// of this package.
package validators

import "context"

// Validator validates the provided input and optionally restricts
// validation to specific named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
