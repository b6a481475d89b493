// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-admin-auth/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestRequestValidator_Validate(t *testing.T) {
	v := NewRequestValidator()
	validUser := models.UserCreateRequest{Username: "alice", Email: "alice@example.com", Password: "pw"}

	tests := []struct {
		name    string
		obj     any
		fields  []string
		wantErr error
	}{
		{name: "user create ok", obj: validUser},
		{name: "user create pointer ok", obj: &validUser},
		{name: "user create blank username", obj: models.UserCreateRequest{Username: "  ", Email: "a@example.com", Password: "pw"}, wantErr: ErrEmptyUsername},
		{name: "user create missing email", obj: models.UserCreateRequest{Username: "a", Password: "pw"}, wantErr: ErrEmptyEmail},
		{name: "user create missing password", obj: models.UserCreateRequest{Username: "a", Email: "a@example.com"}, wantErr: ErrEmptyPassword},
		{name: "user create malformed email", obj: models.UserCreateRequest{Username: "a", Email: "not-an-email", Password: "pw"}, wantErr: ErrInvalidEmail},
		{name: "user create scoped to username", obj: models.UserCreateRequest{Username: "a"}, fields: []string{FieldUsername}},
		{name: "user create unknown field", obj: validUser, fields: []string{"roles"}, wantErr: ErrUnknownField},

		{name: "user update empty is ok", obj: models.UserUpdateRequest{}},
		{name: "user update empty password", obj: models.UserUpdateRequest{Password: strPtr("")}, wantErr: ErrEmptyPassword},
		{name: "user update blank email", obj: &models.UserUpdateRequest{Email: strPtr(" ")}, wantErr: ErrEmptyEmail},
		{name: "user update malformed email", obj: models.UserUpdateRequest{Email: strPtr("b@")}, wantErr: ErrInvalidEmail},
		{name: "user update new values", obj: models.UserUpdateRequest{Email: strPtr("b@example.com"), Password: strPtr("new")}},

		{name: "change password ok", obj: models.ChangePasswordRequest{NewPassword: "n"}},
		{name: "change password empty", obj: models.ChangePasswordRequest{CurrentPassword: "old"}, wantErr: ErrEmptyNewPassword},

		{name: "role ok", obj: models.RoleRequest{Name: "Auditor"}},
		{name: "role blank name", obj: &models.RoleRequest{Name: " "}, wantErr: ErrEmptyName},
		{name: "role unknown field", obj: models.RoleRequest{Name: "Auditor"}, fields: []string{FieldEmail}, wantErr: ErrUnknownField},
		{name: "permission ok", obj: models.PermissionRequest{Name: "Audit.Read"}, fields: []string{FieldName}},
		{name: "permission blank name", obj: models.PermissionRequest{}, wantErr: ErrEmptyName},

		{name: "seed admin ok", obj: models.SeedAdmin{Username: "admin", Email: "admin@example.com", Password: "pw"}},
		{name: "seed admin malformed email", obj: models.SeedAdmin{Username: "admin", Email: "admin", Password: "pw"}, wantErr: ErrInvalidEmail},
		{name: "seed admin missing password", obj: models.SeedAdmin{Username: "admin", Email: "admin@example.com"}, wantErr: ErrEmptyPassword},

		{name: "unsupported type", obj: models.LoginRequest{}, wantErr: ErrUnsupportedType},
		{name: "nil", obj: nil, wantErr: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.obj, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
