// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-admin-auth/models"
)

// TokenCodec issues and verifies access tokens. It is satisfied by
// *utils.JWTCodec.
type TokenCodec interface {
	Issue(userID int64, username string, roles []string) (models.AccessToken, error)
	Decode(tokenString string) (models.AccessClaims, error)
}

// AuthService implements the credential and refresh-token flows.
type AuthService interface {
	Login(ctx context.Context, username, password string) (models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	// RevokeRefreshToken is idempotent: unknown and already revoked tokens
	// are not an error.
	RevokeRefreshToken(ctx context.Context, refreshToken string) error
	// RevokeAllForUser logs the user out everywhere and reports how many
	// tokens were revoked.
	RevokeAllForUser(ctx context.Context, userID int64) (int64, error)
}

// Guard resolves the caller of a request and checks role and permission
// requirements against the live store state.
//
// Roles are checked with OR semantics (any one role suffices) while
// permissions are checked with AND semantics (all of them are required).
type Guard interface {
	Authenticate(ctx context.Context, bearerToken string) (models.Principal, error)
	RequireRoles(principal models.Principal, roles ...string) error
	RequirePermissions(ctx context.Context, principal models.Principal, enforce bool, permissions ...string) (models.Principal, error)
}

// UserService covers user administration and the self-service operations of
// the authenticated caller.
type UserService interface {
	Search(ctx context.Context, query models.UserSearchQuery) (models.PagedResult[models.UserDTO], error)
	GetByID(ctx context.Context, userID int64) (models.UserDTO, error)
	Create(ctx context.Context, request models.UserCreateRequest) (models.UserDTO, error)
	Update(ctx context.Context, userID int64, request models.UserUpdateRequest) (models.UserDTO, error)
	Delete(ctx context.Context, userID int64) error

	GetOwnRoles(ctx context.Context, userID int64) ([]string, error)
	GetOwnPermissions(ctx context.Context, userID int64) ([]string, error)
	UpdateOwnRoles(ctx context.Context, userID int64, roleNames []string) (models.UserDTO, error)
	ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest) error
}

type RoleService interface {
	List(ctx context.Context) ([]models.Role, error)
	GetByID(ctx context.Context, roleID int64) (models.Role, error)
	Create(ctx context.Context, request models.RoleRequest) (models.Role, error)
	Update(ctx context.Context, roleID int64, request models.RoleRequest) (models.Role, error)
	Delete(ctx context.Context, roleID int64) error
	AssignToUser(ctx context.Context, roleID, userID int64) error
	RemoveFromUser(ctx context.Context, roleID, userID int64) error
	GetPermissions(ctx context.Context, roleID int64) ([]models.Permission, error)
}

type PermissionService interface {
	List(ctx context.Context) ([]models.Permission, error)
	GetByID(ctx context.Context, permissionID int64) (models.Permission, error)
	Create(ctx context.Context, request models.PermissionRequest) (models.Permission, error)
	Update(ctx context.Context, permissionID int64, request models.PermissionRequest) (models.Permission, error)
	Delete(ctx context.Context, permissionID int64) error
	Assign(ctx context.Context, assignment models.PermissionAssignment) error
	Unassign(ctx context.Context, assignment models.PermissionAssignment) error
}

type AppInfoService interface {
	GetVersionInfo(ctx context.Context) models.VersionInfo
}

// Seeder provisions the default roles, permissions and the administrator
// account. Running it again changes nothing that already exists.
type Seeder interface {
	Seed(ctx context.Context, admin models.SeedAdmin) (models.SeedReport, error)
}

// TokenCleaner removes refresh tokens that can no longer be used.
type TokenCleaner interface {
	// PurgeExpired deletes every refresh token that has expired and reports
	// how many were removed.
	PurgeExpired(ctx context.Context) (int64, error)
}
