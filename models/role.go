// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Role is a named bundle of permissions that can be assigned to users.
type Role struct {
	RoleID      int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// TableName returns the name of the database table
// associated with the Role model.
func (r Role) TableName() string {
	return "roles"
}

// RoleRequest is the payload for creating or replacing a role.
type RoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// ToRole converts the request into a role row. A missing active flag
// defaults to true.
func (r RoleRequest) ToRole() Role {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return Role{
		Name:        r.Name,
		Description: r.Description,
		IsActive:    isActive,
	}
}

// RoleNames extracts the names of roles preserving their order.
func RoleNames(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return names
}
