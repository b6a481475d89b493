// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-admin-auth/models"
	"github.com/go-playground/validator/v10"
)

const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldNewPassword = "new_password"
	FieldName        = "name"
)

type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() Validator {
	return &RequestValidator{validate: validator.New()}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UserCreateRequest:
		return v.validateUserCreate(ctx, value, fields...)
	case *models.UserCreateRequest:
		return v.validateUserCreate(ctx, *value, fields...)

	case models.UserUpdateRequest:
		return v.validateUserUpdate(ctx, value, fields...)
	case *models.UserUpdateRequest:
		return v.validateUserUpdate(ctx, *value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(ctx, value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePassword(ctx, *value, fields...)

	case models.RoleRequest:
		return v.validateName(value.Name, fields...)
	case *models.RoleRequest:
		return v.validateName(value.Name, fields...)

	case models.PermissionRequest:
		return v.validateName(value.Name, fields...)
	case *models.PermissionRequest:
		return v.validateName(value.Name, fields...)

	case models.SeedAdmin:
		return v.validateSeedAdmin(ctx, value, fields...)
	case *models.SeedAdmin:
		return v.validateSeedAdmin(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (v *RequestValidator) validateEmail(email string) error {
	if blank(email) {
		return ErrEmptyEmail
	}
	if err := v.validate.Var(email, "email"); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func (v *RequestValidator) validateUserCreate(_ context.Context, request models.UserCreateRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if blank(request.Username) {
				return ErrEmptyUsername
			}
		case FieldEmail:
			if err := v.validateEmail(request.Email); err != nil {
				return err
			}
		case FieldPassword:
			if request.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUserUpdate only checks the fields that are present; a nil field
// means "leave unchanged".
func (v *RequestValidator) validateUserUpdate(_ context.Context, request models.UserUpdateRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassword, FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldPassword:
			if request.Password != nil && *request.Password == "" {
				return ErrEmptyPassword
			}
		case FieldEmail:
			if request.Email == nil {
				continue
			}
			if err := v.validateEmail(*request.Email); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateChangePassword(_ context.Context, request models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldNewPassword:
			if request.NewPassword == "" {
				return ErrEmptyNewPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateName(name string, fields ...string) error {
	for _, f := range fields {
		if f != FieldName {
			return ErrUnknownField
		}
	}

	if blank(name) {
		return ErrEmptyName
	}
	return nil
}

func (v *RequestValidator) validateSeedAdmin(_ context.Context, admin models.SeedAdmin, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if blank(admin.Username) {
				return ErrEmptyUsername
			}
		case FieldEmail:
			if err := v.validateEmail(admin.Email); err != nil {
				return err
			}
		case FieldPassword:
			if admin.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
