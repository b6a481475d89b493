// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"math"
	"time"
)

// User represents an account that can authenticate against the API.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the database-assigned identifier. It becomes the "sub"
	// claim of every access token issued for the user.
	UserID int64 `json:"id"`

	// Username is the unique, immutable login name.
	Username string `json:"username"`

	// Email is the unique contact address of the user.
	Email string `json:"email"`

	// FullName is an optional display name.
	FullName string `json:"full_name,omitempty"`

	// IsActive reports whether the account may log in. Inactive users are
	// rejected by login, refresh and every authorization guard.
	IsActive bool `json:"is_active"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It is never serialized.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserDTO is the public representation of a user, enriched with the names of
// the roles currently assigned to it.
type UserDTO struct {
	UserID    int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserDTO converts a stored user and its role names into the public form.
func ToUserDTO(u User, roles []string) UserDTO {
	if roles == nil {
		roles = []string{}
	}

	return UserDTO{
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		Roles:     roles,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserCreateRequest is the payload of POST /api/users.
type UserCreateRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name,omitempty"`
	Password string   `json:"password"`
	IsActive *bool    `json:"is_active,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// ToUser builds the user row to insert. The plaintext password is not copied;
// passwordHash must already be computed by the caller.
func (r UserCreateRequest) ToUser(passwordHash string) User {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return User{
		Username:     r.Username,
		Email:        r.Email,
		FullName:     r.FullName,
		IsActive:     isActive,
		PasswordHash: passwordHash,
	}
}

// UserUpdateRequest is the payload of PUT /api/users/{id}. Nil fields are
// left unchanged. Username is immutable and therefore absent.
type UserUpdateRequest struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ApplyTo copies the non-nil profile fields of the request onto u.
// The password is handled separately because it has to be hashed first.
func (r UserUpdateRequest) ApplyTo(u User) User {
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.FullName != nil {
		u.FullName = *r.FullName
	}
	if r.IsActive != nil {
		u.IsActive = *r.IsActive
	}

	return u
}

// UserSearchQuery describes a paged, filtered user listing.
type UserSearchQuery struct {
	// Search is matched case-insensitively against username, email and
	// full name.
	Search string

	// IsActive filters by the active flag when non-nil.
	IsActive *bool

	// SortBy is one of "id", "username", "email" or "created_at".
	SortBy string

	// SortDesc flips the ordering to descending.
	SortDesc bool

	Page     int
	PageSize int
}

// Offset returns the number of rows to skip for the requested page. It
// saturates at math.MaxInt instead of overflowing.
func (q UserSearchQuery) Offset() int {
	if q.Page < 1 || q.PageSize < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.PageSize {
		return math.MaxInt
	}
	return (q.Page - 1) * q.PageSize
}

// UpdateRolesRequest is the payload of PUT /api/users/me/roles.
type UpdateRolesRequest struct {
	Roles []string `json:"roles"`
}

// ChangePasswordRequest is the payload of PUT /api/users/me/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
