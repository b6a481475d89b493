// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SeedAdmin describes the administrator account created by the seed command.
type SeedAdmin struct {
	Username string
	Email    string
	FullName string
	Password string
}

// SeedReport summarizes what a seed run created. Zero counts mean the store
// was already seeded.
type SeedReport struct {
	RolesCreated       int   `json:"roles_created"`
	PermissionsCreated int   `json:"permissions_created"`
	AdminCreated       bool  `json:"admin_created"`
	AdminID            int64 `json:"admin_id"`
}
