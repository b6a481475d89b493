// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-admin-auth/internal/config"
	"github.com/MKhiriev/go-admin-auth/internal/crypto"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/store"
	"github.com/MKhiriev/go-admin-auth/internal/utils"
	"github.com/MKhiriev/go-admin-auth/models"
	"github.com/stretchr/testify/require"
)

const (
	testPassword = "correct-horse"
	testIssuer   = "go-admin-auth-test"
)

type fixture struct {
	store  *memStore
	hasher crypto.PasswordHasher
	codec  *utils.JWTCodec
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	codec, err := utils.NewJWTCodec("test-sign-key", testIssuer, time.Hour)
	require.NoError(t, err)

	return &fixture{
		store:  newMemStore(),
		hasher: crypto.NewBcryptHasher(4),
		codec:  codec,
	}
}

func testAppConfig(refreshEnabled bool) config.App {
	return config.App{
		TokenSignKey:               "test-sign-key",
		TokenIssuer:                testIssuer,
		AccessTokenLifetimeMinutes: 60,
		RefreshTokensEnabled:       &refreshEnabled,
		RefreshTokenLifetimeDays:   7,
	}
}

func (f *fixture) authService(t *testing.T, refreshEnabled bool) *authService {
	t.Helper()

	svc, err := NewAuthService(f.store, f.hasher, f.codec, crypto.NewTokenGenerator(), testAppConfig(refreshEnabled), logger.Nop())
	require.NoError(t, err)
	return svc.(*authService)
}

func (f *fixture) guard() Guard {
	return NewGuard(f.store, f.codec, logger.Nop())
}

func (f *fixture) userService() *userService {
	return NewUserService(f.store, f.hasher, logger.Nop()).(*userService)
}

// addPermission stores a permission directly, bypassing any service.
func (f *fixture) addPermission(t *testing.T, name string, active bool) models.Permission {
	t.Helper()

	var perm models.Permission
	f.store.seed(func(uow store.UnitOfWork) {
		var err error
		perm, err = uow.Permissions().Create(context.Background(), models.Permission{Name: name, IsActive: active})
		require.NoError(t, err)
	})
	return perm
}

// addRole stores a role and grants it the named permissions, creating active
// ones for names that do not exist yet.
func (f *fixture) addRole(t *testing.T, name string, active bool, permissions ...string) models.Role {
	t.Helper()

	ctx := context.Background()
	var role models.Role
	f.store.seed(func(uow store.UnitOfWork) {
		var err error
		role, err = uow.Roles().Create(ctx, models.Role{Name: name, IsActive: active})
		require.NoError(t, err)

		for _, p := range permissions {
			existing, err := uow.Permissions().GetByNames(ctx, []string{p})
			require.NoError(t, err)

			perm := models.Permission{Name: p, IsActive: true}
			if len(existing) > 0 {
				perm = existing[0]
			} else {
				perm, err = uow.Permissions().Create(ctx, perm)
				require.NoError(t, err)
			}
			require.NoError(t, uow.Permissions().AssignToRole(ctx, role.RoleID, perm.PermissionID))
		}
	})
	return role
}

// addUser stores a user with password testPassword and assigns existing
// roles by name.
func (f *fixture) addUser(t *testing.T, username string, active bool, roles ...string) models.User {
	t.Helper()

	hash, err := f.hasher.Hash(testPassword)
	require.NoError(t, err)

	ctx := context.Background()
	var user models.User
	f.store.seed(func(uow store.UnitOfWork) {
		user, err = uow.Users().Create(ctx, models.User{
			Username:     username,
			Email:        username + "@example.com",
			PasswordHash: hash,
			IsActive:     active,
		})
		require.NoError(t, err)

		for _, name := range roles {
			role, err := uow.Roles().GetByName(ctx, name)
			require.NoError(t, err)
			require.NoError(t, uow.Roles().AssignToUser(ctx, user.UserID, role.RoleID))
		}
	})
	return user
}

func (f *fixture) setUserActive(t *testing.T, userID int64, active bool) {
	t.Helper()

	ctx := context.Background()
	f.store.seed(func(uow store.UnitOfWork) {
		user, err := uow.Users().GetByID(ctx, userID)
		require.NoError(t, err)

		user.IsActive = active
		_, err = uow.Users().Update(ctx, user)
		require.NoError(t, err)
	})
}

func (f *fixture) tokensOf(userID int64) []models.RefreshToken {
	var out []models.RefreshToken
	for _, tok := range f.store.snapshot().tokens {
		if tok.UserID == userID {
			out = append(out, tok)
		}
	}
	return out
}
