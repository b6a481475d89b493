// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Built-in role names.
const (
	RoleSuperAdmin = "SuperAdmin"
	RoleAdmin      = "Admin"
	RoleUser       = "User"
)

// DefaultRoles lists the roles created by the seed command, highest first.
func DefaultRoles() []string {
	return []string{RoleSuperAdmin, RoleAdmin, RoleUser}
}

// Built-in permission names guarding the admin API.
const (
	PermissionUsersRead            = "Users.Read"
	PermissionUsersWrite           = "Users.Write"
	PermissionUsersSelfManageRoles = "Users.Self.ManageRoles"
	PermissionRolesRead            = "Roles.Read"
	PermissionRolesWrite           = "Roles.Write"
	PermissionPermissionsRead      = "Permissions.Read"
	PermissionPermissionsWrite     = "Permissions.Write"
)

// DefaultPermissions lists every built-in permission in seed order.
func DefaultPermissions() []string {
	return []string{
		PermissionUsersRead,
		PermissionUsersWrite,
		PermissionUsersSelfManageRoles,
		PermissionRolesRead,
		PermissionRolesWrite,
		PermissionPermissionsRead,
		PermissionPermissionsWrite,
	}
}
