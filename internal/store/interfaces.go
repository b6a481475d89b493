// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/go-admin-auth/models"
)

// UserRepository persists user accounts (the credential store).
type UserRepository interface {
	// Create inserts a user and returns it with id and timestamps populated.
	// Duplicate username or email yields [ErrAlreadyExists].
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, userID int64) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	// Update overwrites email, full name, password hash and the active flag.
	Update(ctx context.Context, user models.User) (models.User, error)
	Delete(ctx context.Context, userID int64) error
	// Search returns one page of users and the total number of matches.
	Search(ctx context.Context, query models.UserSearchQuery) ([]models.User, int64, error)
}

// RoleRepository persists roles and their assignment to users.
type RoleRepository interface {
	Create(ctx context.Context, role models.Role) (models.Role, error)
	GetByID(ctx context.Context, roleID int64) (models.Role, error)
	GetByName(ctx context.Context, name string) (models.Role, error)
	// GetByNames and GetByIDs silently omit entries that do not exist.
	GetByNames(ctx context.Context, names []string) ([]models.Role, error)
	GetByIDs(ctx context.Context, roleIDs []int64) ([]models.Role, error)
	List(ctx context.Context) ([]models.Role, error)
	Update(ctx context.Context, role models.Role) (models.Role, error)
	Delete(ctx context.Context, roleID int64) error

	// AssignToUser is idempotent: an existing pair is left untouched.
	AssignToUser(ctx context.Context, userID, roleID int64) error
	// RemoveFromUser is idempotent: a missing pair is not an error.
	RemoveFromUser(ctx context.Context, userID, roleID int64) error
	ClearForUser(ctx context.Context, userID int64) error
	GetByUser(ctx context.Context, userID int64) ([]models.Role, error)
}

// PermissionRepository persists permissions and their grant to roles.
type PermissionRepository interface {
	Create(ctx context.Context, permission models.Permission) (models.Permission, error)
	GetByID(ctx context.Context, permissionID int64) (models.Permission, error)
	GetByNames(ctx context.Context, names []string) ([]models.Permission, error)
	List(ctx context.Context) ([]models.Permission, error)
	Update(ctx context.Context, permission models.Permission) (models.Permission, error)
	Delete(ctx context.Context, permissionID int64) error

	// AssignToRole is idempotent: an existing pair is left untouched.
	AssignToRole(ctx context.Context, roleID, permissionID int64) error
	// RemoveFromRole is idempotent: a missing pair is not an error.
	RemoveFromRole(ctx context.Context, roleID, permissionID int64) error
	GetByRole(ctx context.Context, roleID int64) ([]models.Permission, error)
	// GetByRoles returns the distinct union of permissions over roleIDs.
	GetByRoles(ctx context.Context, roleIDs []int64) ([]models.Permission, error)
}

// RefreshTokenRepository persists refresh tokens. Rows are only ever
// mutated to mark them revoked.
type RefreshTokenRepository interface {
	Add(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error)
	// GetByToken looks the token up by exact match.
	GetByToken(ctx context.Context, token string) (models.RefreshToken, error)
	// Revoke marks the row revoked only if it is not revoked yet and returns
	// [ErrAlreadyRevoked] otherwise.
	Revoke(ctx context.Context, tokenID int64, replacedBy *string, revokedAt time.Time) error
	// RevokeAllForUser revokes every active token of the user and returns
	// how many rows changed.
	RevokeAllForUser(ctx context.Context, userID int64, revokedAt time.Time) (int64, error)
	GetValidTokensForUser(ctx context.Context, userID int64, now time.Time) ([]models.RefreshToken, error)
	// DeleteExpired removes every token that expired before the given time,
	// revoked or not, and returns how many rows were removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// UnitOfWork exposes repositories bound to a single database transaction.
type UnitOfWork interface {
	Users() UserRepository
	Roles() RoleRepository
	Permissions() PermissionRepository
	RefreshTokens() RefreshTokenRepository
}

// Transactor runs fn inside a transaction. The transaction is committed
// when fn returns nil and rolled back when fn returns an error or panics.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// querier is the subset of *sql.DB and *sql.Tx used by repositories.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
