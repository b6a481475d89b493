// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/MKhiriev/go-admin-auth/internal/config"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/metrics"
	"github.com/MKhiriev/go-admin-auth/internal/service"
	"github.com/MKhiriev/go-admin-auth/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// Each mock implements one service interface through overridable function
// fields. Calling a method whose field is nil panics, which fails the test.

type mockAuthService struct {
	loginFn              func(ctx context.Context, username, password string) (models.TokenPair, error)
	refreshFn            func(ctx context.Context, refreshToken string) (models.TokenPair, error)
	revokeRefreshTokenFn func(ctx context.Context, refreshToken string) error
	revokeAllForUserFn   func(ctx context.Context, userID int64) (int64, error)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (models.TokenPair, error) {
	return m.loginFn(ctx, username, password)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	return m.refreshFn(ctx, refreshToken)
}

func (m *mockAuthService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	return m.revokeRefreshTokenFn(ctx, refreshToken)
}

func (m *mockAuthService) RevokeAllForUser(ctx context.Context, userID int64) (int64, error) {
	return m.revokeAllForUserFn(ctx, userID)
}

// mockGuard authenticates the tokens listed in principals and grants each
// user the permissions listed in grants. Role checks use OR semantics and
// permission checks AND semantics, as the real guard does.
type mockGuard struct {
	principals map[string]models.Principal
	grants     map[int64][]string

	authenticateErr error
}

func (g *mockGuard) Authenticate(_ context.Context, bearerToken string) (models.Principal, error) {
	if g.authenticateErr != nil {
		return models.Principal{}, g.authenticateErr
	}
	p, ok := g.principals[bearerToken]
	if !ok {
		return models.Principal{}, service.ErrUnauthenticated
	}
	return p, nil
}

func (g *mockGuard) RequireRoles(principal models.Principal, roles ...string) error {
	if len(roles) == 0 || slices.ContainsFunc(roles, principal.HasRole) {
		return nil
	}
	return fmt.Errorf("%w: insufficient role", service.ErrForbidden)
}

func (g *mockGuard) RequirePermissions(_ context.Context, principal models.Principal, enforce bool, permissions ...string) (models.Principal, error) {
	if !enforce {
		return principal, nil
	}
	principal.Permissions = g.grants[principal.UserID]
	for _, p := range permissions {
		if !principal.HasPermission(p) {
			return principal, fmt.Errorf("%w: missing permissions %s", service.ErrForbidden, p)
		}
	}
	return principal, nil
}

type mockUserService struct {
	searchFn            func(ctx context.Context, query models.UserSearchQuery) (models.PagedResult[models.UserDTO], error)
	getByIDFn           func(ctx context.Context, userID int64) (models.UserDTO, error)
	createFn            func(ctx context.Context, request models.UserCreateRequest) (models.UserDTO, error)
	updateFn            func(ctx context.Context, userID int64, request models.UserUpdateRequest) (models.UserDTO, error)
	deleteFn            func(ctx context.Context, userID int64) error
	getOwnRolesFn       func(ctx context.Context, userID int64) ([]string, error)
	getOwnPermissionsFn func(ctx context.Context, userID int64) ([]string, error)
	updateOwnRolesFn    func(ctx context.Context, userID int64, roleNames []string) (models.UserDTO, error)
	changePasswordFn    func(ctx context.Context, userID int64, request models.ChangePasswordRequest) error
}

func (m *mockUserService) Search(ctx context.Context, query models.UserSearchQuery) (models.PagedResult[models.UserDTO], error) {
	return m.searchFn(ctx, query)
}

func (m *mockUserService) GetByID(ctx context.Context, userID int64) (models.UserDTO, error) {
	return m.getByIDFn(ctx, userID)
}

func (m *mockUserService) Create(ctx context.Context, request models.UserCreateRequest) (models.UserDTO, error) {
	return m.createFn(ctx, request)
}

func (m *mockUserService) Update(ctx context.Context, userID int64, request models.UserUpdateRequest) (models.UserDTO, error) {
	return m.updateFn(ctx, userID, request)
}

func (m *mockUserService) Delete(ctx context.Context, userID int64) error {
	return m.deleteFn(ctx, userID)
}

func (m *mockUserService) GetOwnRoles(ctx context.Context, userID int64) ([]string, error) {
	return m.getOwnRolesFn(ctx, userID)
}

func (m *mockUserService) GetOwnPermissions(ctx context.Context, userID int64) ([]string, error) {
	return m.getOwnPermissionsFn(ctx, userID)
}

func (m *mockUserService) UpdateOwnRoles(ctx context.Context, userID int64, roleNames []string) (models.UserDTO, error) {
	return m.updateOwnRolesFn(ctx, userID, roleNames)
}

func (m *mockUserService) ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest) error {
	return m.changePasswordFn(ctx, userID, request)
}

type mockRoleService struct {
	listFn           func(ctx context.Context) ([]models.Role, error)
	getByIDFn        func(ctx context.Context, roleID int64) (models.Role, error)
	createFn         func(ctx context.Context, request models.RoleRequest) (models.Role, error)
	updateFn         func(ctx context.Context, roleID int64, request models.RoleRequest) (models.Role, error)
	deleteFn         func(ctx context.Context, roleID int64) error
	assignToUserFn   func(ctx context.Context, roleID, userID int64) error
	removeFromUserFn func(ctx context.Context, roleID, userID int64) error
	getPermissionsFn func(ctx context.Context, roleID int64) ([]models.Permission, error)
}

func (m *mockRoleService) List(ctx context.Context) ([]models.Role, error) { return m.listFn(ctx) }

func (m *mockRoleService) GetByID(ctx context.Context, roleID int64) (models.Role, error) {
	return m.getByIDFn(ctx, roleID)
}

func (m *mockRoleService) Create(ctx context.Context, request models.RoleRequest) (models.Role, error) {
	return m.createFn(ctx, request)
}

func (m *mockRoleService) Update(ctx context.Context, roleID int64, request models.RoleRequest) (models.Role, error) {
	return m.updateFn(ctx, roleID, request)
}

func (m *mockRoleService) Delete(ctx context.Context, roleID int64) error {
	return m.deleteFn(ctx, roleID)
}

func (m *mockRoleService) AssignToUser(ctx context.Context, roleID, userID int64) error {
	return m.assignToUserFn(ctx, roleID, userID)
}

func (m *mockRoleService) RemoveFromUser(ctx context.Context, roleID, userID int64) error {
	return m.removeFromUserFn(ctx, roleID, userID)
}

func (m *mockRoleService) GetPermissions(ctx context.Context, roleID int64) ([]models.Permission, error) {
	return m.getPermissionsFn(ctx, roleID)
}

type mockPermissionService struct {
	listFn     func(ctx context.Context) ([]models.Permission, error)
	getByIDFn  func(ctx context.Context, permissionID int64) (models.Permission, error)
	createFn   func(ctx context.Context, request models.PermissionRequest) (models.Permission, error)
	updateFn   func(ctx context.Context, permissionID int64, request models.PermissionRequest) (models.Permission, error)
	deleteFn   func(ctx context.Context, permissionID int64) error
	assignFn   func(ctx context.Context, assignment models.PermissionAssignment) error
	unassignFn func(ctx context.Context, assignment models.PermissionAssignment) error
}

func (m *mockPermissionService) List(ctx context.Context) ([]models.Permission, error) {
	return m.listFn(ctx)
}

func (m *mockPermissionService) GetByID(ctx context.Context, permissionID int64) (models.Permission, error) {
	return m.getByIDFn(ctx, permissionID)
}

func (m *mockPermissionService) Create(ctx context.Context, request models.PermissionRequest) (models.Permission, error) {
	return m.createFn(ctx, request)
}

func (m *mockPermissionService) Update(ctx context.Context, permissionID int64, request models.PermissionRequest) (models.Permission, error) {
	return m.updateFn(ctx, permissionID, request)
}

func (m *mockPermissionService) Delete(ctx context.Context, permissionID int64) error {
	return m.deleteFn(ctx, permissionID)
}

func (m *mockPermissionService) Assign(ctx context.Context, assignment models.PermissionAssignment) error {
	return m.assignFn(ctx, assignment)
}

func (m *mockPermissionService) Unassign(ctx context.Context, assignment models.PermissionAssignment) error {
	return m.unassignFn(ctx, assignment)
}

type mockAppInfoService struct {
	info models.VersionInfo
}

func (m *mockAppInfoService) GetVersionInfo(context.Context) models.VersionInfo { return m.info }

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const (
	adminToken = "admin-token"
	aliceToken = "alice-token"
)

var (
	adminPrincipal = models.Principal{UserID: 1, Username: "admin", Roles: []string{models.RoleAdmin}}
	alicePrincipal = models.Principal{UserID: 2, Username: "alice", Roles: []string{models.RoleUser}}
)

// newTestServices returns services where the guard knows adminToken and
// aliceToken. Admin holds every default permission, alice none.
func newTestServices() *service.Services {
	return &service.Services{
		AuthService: &mockAuthService{},
		Guard: &mockGuard{
			principals: map[string]models.Principal{
				adminToken: adminPrincipal,
				aliceToken: alicePrincipal,
			},
			grants: map[int64][]string{
				adminPrincipal.UserID: models.DefaultPermissions(),
			},
		},
		UserService:       &mockUserService{},
		RoleService:       &mockRoleService{},
		PermissionService: &mockPermissionService{},
		AppInfoService:    &mockAppInfoService{info: models.VersionInfo{Version: "1.2.3"}},
	}
}

func newTestHandler(t *testing.T, services *service.Services, cfg config.Server) *Handler {
	t.Helper()

	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	return NewHandler(services, m, cfg, logger.Nop())
}
