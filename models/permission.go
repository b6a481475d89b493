// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Permission is a dotted capability name such as "Users.Read" granted to
// roles.
type Permission struct {
	PermissionID int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	IsActive     bool   `json:"is_active"`
}

// TableName returns the name of the database table
// associated with the Permission model.
func (p Permission) TableName() string {
	return "permissions"
}

// PermissionRequest is the payload for creating or replacing a permission.
type PermissionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// ToPermission converts the request into a permission row. A missing active
// flag defaults to true.
func (r PermissionRequest) ToPermission() Permission {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return Permission{
		Name:        r.Name,
		Description: r.Description,
		IsActive:    isActive,
	}
}

// PermissionAssignment links a permission to a role.
type PermissionAssignment struct {
	PermissionID int64 `json:"permission_id"`
	RoleID       int64 `json:"role_id"`
}

// PermissionNames extracts the names of permissions preserving their order.
func PermissionNames(perms []Permission) []string {
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, p.Name)
	}
	return names
}
