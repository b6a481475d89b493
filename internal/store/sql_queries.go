// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-admin-auth/models"
)

// psql builds Postgres statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	userColumns         = []string{"id", "username", "email", "full_name", "password_hash", "is_active", "created_at", "updated_at"}
	roleColumns         = []string{"id", "name", "description", "is_active"}
	permissionColumns   = []string{"id", "name", "description", "is_active"}
	refreshTokenColumns = []string{"id", "user_id", "token", "expires_at", "revoked_at", "is_revoked", "replaced_by_token", "created_at"}
)

// userSortColumns whitelists the columns a user listing may be ordered by.
var userSortColumns = map[string]string{
	"id":         "id",
	"username":   "username",
	"email":      "email",
	"created_at": "created_at",
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func qualified(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildInsertUserQuery(user models.User) (string, []any, error) {
	return psql.Insert("users").
		Columns("username", "email", "full_name", "password_hash", "is_active").
		Values(user.Username, user.Email, user.FullName, user.PasswordHash, user.IsActive).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildSelectUserQuery(where sq.Sqlizer) (string, []any, error) {
	return psql.Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
}

func buildUpdateUserQuery(user models.User) (string, []any, error) {
	return psql.Update("users").
		Set("email", user.Email).
		Set("full_name", user.FullName).
		Set("password_hash", user.PasswordHash).
		Set("is_active", user.IsActive).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": user.UserID}).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildDeleteUserQuery(userID int64) (string, []any, error) {
	return psql.Delete("users").Where(sq.Eq{"id": userID}).ToSql()
}

// userSearchFilter returns nil when the query carries no filter.
func userSearchFilter(query models.UserSearchQuery) sq.Sqlizer {
	filter := sq.And{}

	if search := strings.TrimSpace(query.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		filter = append(filter, sq.Or{
			sq.ILike{"username": pattern},
			sq.ILike{"email": pattern},
			sq.ILike{"full_name": pattern},
		})
	}

	if query.IsActive != nil {
		filter = append(filter, sq.Eq{"is_active": *query.IsActive})
	}

	if len(filter) == 0 {
		return nil
	}
	return filter
}

func buildSearchUsersQuery(query models.UserSearchQuery) (string, []any, error) {
	column, ok := userSortColumns[query.SortBy]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if query.SortDesc {
		direction = "DESC"
	}

	builder := psql.Select(userColumns...).From("users")
	if filter := userSearchFilter(query); filter != nil {
		builder = builder.Where(filter)
	}

	orderBy := []string{column + " " + direction}
	if column != "id" {
		orderBy = append(orderBy, "id ASC")
	}

	return builder.
		OrderBy(orderBy...).
		Limit(uint64(query.PageSize)).
		Offset(uint64(query.Offset())).
		ToSql()
}

func buildCountUsersQuery(query models.UserSearchQuery) (string, []any, error) {
	builder := psql.Select("COUNT(*)").From("users")
	if filter := userSearchFilter(query); filter != nil {
		builder = builder.Where(filter)
	}
	return builder.ToSql()
}

// escapeLike neutralises LIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ── roles ─────────────────────────────────────────────────────────────────────

func buildInsertRoleQuery(role models.Role) (string, []any, error) {
	return psql.Insert("roles").
		Columns("name", "description", "is_active").
		Values(role.Name, role.Description, role.IsActive).
		Suffix(returning(roleColumns)).
		ToSql()
}

func buildSelectRolesQuery(where sq.Sqlizer) (string, []any, error) {
	builder := psql.Select(roleColumns...).From("roles")
	if where != nil {
		builder = builder.Where(where)
	}
	return builder.OrderBy("name ASC").ToSql()
}

func buildUpdateRoleQuery(role models.Role) (string, []any, error) {
	return psql.Update("roles").
		Set("name", role.Name).
		Set("description", role.Description).
		Set("is_active", role.IsActive).
		Where(sq.Eq{"id": role.RoleID}).
		Suffix(returning(roleColumns)).
		ToSql()
}

func buildDeleteRoleQuery(roleID int64) (string, []any, error) {
	return psql.Delete("roles").Where(sq.Eq{"id": roleID}).ToSql()
}

func buildSelectRolesByUserQuery(userID int64) (string, []any, error) {
	return psql.Select(qualified("r", roleColumns)...).
		From("roles r").
		Join("user_roles ur ON ur.role_id = r.id").
		Where(sq.Eq{"ur.user_id": userID}).
		OrderBy("r.name ASC").
		ToSql()
}

func buildAssignRoleQuery(userID, roleID int64) (string, []any, error) {
	return psql.Insert("user_roles").
		Columns("user_id", "role_id").
		Values(userID, roleID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
}

func buildRemoveRoleQuery(userID, roleID int64) (string, []any, error) {
	return psql.Delete("user_roles").
		Where(sq.And{sq.Eq{"user_id": userID}, sq.Eq{"role_id": roleID}}).
		ToSql()
}

func buildClearRolesQuery(userID int64) (string, []any, error) {
	return psql.Delete("user_roles").Where(sq.Eq{"user_id": userID}).ToSql()
}

// ── permissions ───────────────────────────────────────────────────────────────

func buildInsertPermissionQuery(permission models.Permission) (string, []any, error) {
	return psql.Insert("permissions").
		Columns("name", "description", "is_active").
		Values(permission.Name, permission.Description, permission.IsActive).
		Suffix(returning(permissionColumns)).
		ToSql()
}

func buildSelectPermissionsQuery(where sq.Sqlizer) (string, []any, error) {
	builder := psql.Select(permissionColumns...).From("permissions")
	if where != nil {
		builder = builder.Where(where)
	}
	return builder.OrderBy("name ASC").ToSql()
}

func buildUpdatePermissionQuery(permission models.Permission) (string, []any, error) {
	return psql.Update("permissions").
		Set("name", permission.Name).
		Set("description", permission.Description).
		Set("is_active", permission.IsActive).
		Where(sq.Eq{"id": permission.PermissionID}).
		Suffix(returning(permissionColumns)).
		ToSql()
}

func buildDeletePermissionQuery(permissionID int64) (string, []any, error) {
	return psql.Delete("permissions").Where(sq.Eq{"id": permissionID}).ToSql()
}

// buildSelectPermissionsByRolesQuery selects the distinct union of
// permissions granted to any of roleIDs.
func buildSelectPermissionsByRolesQuery(roleIDs []int64) (string, []any, error) {
	return psql.Select(qualified("p", permissionColumns)...).
		Distinct().
		From("permissions p").
		Join("role_permissions rp ON rp.permission_id = p.id").
		Where(sq.Eq{"rp.role_id": roleIDs}).
		OrderBy("p.name ASC").
		ToSql()
}

func buildGrantPermissionQuery(roleID, permissionID int64) (string, []any, error) {
	return psql.Insert("role_permissions").
		Columns("role_id", "permission_id").
		Values(roleID, permissionID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
}

func buildRevokePermissionQuery(roleID, permissionID int64) (string, []any, error) {
	return psql.Delete("role_permissions").
		Where(sq.And{sq.Eq{"role_id": roleID}, sq.Eq{"permission_id": permissionID}}).
		ToSql()
}

// ── refresh tokens ────────────────────────────────────────────────────────────

func buildInsertRefreshTokenQuery(token models.RefreshToken) (string, []any, error) {
	return psql.Insert("refresh_tokens").
		Columns("user_id", "token", "expires_at").
		Values(token.UserID, token.Token, token.ExpiresAt).
		Suffix(returning(refreshTokenColumns)).
		ToSql()
}

func buildSelectRefreshTokenQuery(token string) (string, []any, error) {
	return psql.Select(refreshTokenColumns...).
		From("refresh_tokens").
		Where(sq.Eq{"token": token}).
		ToSql()
}

// buildRevokeRefreshTokenQuery only matches a row that is still active, so at
// most one of two concurrent revocations affects a row.
func buildRevokeRefreshTokenQuery(tokenID int64, replacedBy *string, revokedAt time.Time) (string, []any, error) {
	return psql.Update("refresh_tokens").
		Set("is_revoked", true).
		Set("revoked_at", revokedAt).
		Set("replaced_by_token", replacedBy).
		Where(sq.And{sq.Eq{"id": tokenID}, sq.Eq{"is_revoked": false}}).
		ToSql()
}

func buildRevokeAllRefreshTokensQuery(userID int64, revokedAt time.Time) (string, []any, error) {
	return psql.Update("refresh_tokens").
		Set("is_revoked", true).
		Set("revoked_at", revokedAt).
		Where(sq.And{sq.Eq{"user_id": userID}, sq.Eq{"is_revoked": false}}).
		ToSql()
}

func buildDeleteExpiredRefreshTokensQuery(before time.Time) (string, []any, error) {
	return psql.Delete("refresh_tokens").
		Where(sq.Lt{"expires_at": before}).
		ToSql()
}

func buildSelectValidRefreshTokensQuery(userID int64, now time.Time) (string, []any, error) {
	return psql.Select(refreshTokenColumns...).
		From("refresh_tokens").
		Where(sq.And{
			sq.Eq{"user_id": userID},
			sq.Eq{"is_revoked": false},
			sq.Gt{"expires_at": now},
		}).
		OrderBy("created_at DESC").
		ToSql()
}
