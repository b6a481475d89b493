// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-admin-auth HTTP handlers.
//
// All Msg* constants are human-readable strings written into the "message"
// field of the response envelope. Keeping them in one place keeps the wording
// consistent between handlers and the client adapter.
package app

const (
	// MsgInternalServerError replaces the cause of every 5xx response.
	MsgInternalServerError = "Internal Server Error"

	// MsgRefreshTokenRevoked is returned by the revoke endpoint whether or
	// not the token existed.
	MsgRefreshTokenRevoked = "Refresh token revoked"

	MsgUserDeleted          = "User deleted"
	MsgPasswordChanged      = "Password changed"
	MsgRoleDeleted          = "Role deleted"
	MsgRoleAssigned         = "Role assigned"
	MsgRoleRemoved          = "Role removed"
	MsgPermissionDeleted    = "Permission deleted"
	MsgPermissionAssigned   = "Permission assigned"
	MsgPermissionUnassigned = "Permission unassigned"
)
