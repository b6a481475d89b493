// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "slices"

// Principal is the authenticated caller of a request. It is rebuilt from the
// store on every request and never cached.
type Principal struct {
	UserID   int64    `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`

	// Permissions is only populated after a permission guard resolved them.
	Permissions []string `json:"permissions,omitempty"`
}

// HasRole reports whether the principal currently holds the named role.
func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// HasPermission reports whether name is among the resolved permissions.
func (p Principal) HasPermission(name string) bool {
	return slices.Contains(p.Permissions, name)
}
