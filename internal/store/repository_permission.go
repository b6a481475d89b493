// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/models"
)

// permissionRepository is the PostgreSQL-backed implementation of
// [PermissionRepository] over the "permissions" and "role_permissions"
// tables.
type permissionRepository struct {
	q querier
}

// NewPermissionRepository constructs a [PermissionRepository] bound to q.
func NewPermissionRepository(q querier) PermissionRepository {
	return &permissionRepository{q: q}
}

func (r *permissionRepository) Create(ctx context.Context, permission models.Permission) (models.Permission, error) {
	query, args, err := buildInsertPermissionQuery(permission)
	if err != nil {
		return models.Permission{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanPermission(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*permissionRepository.Create").
			Str("permission", permission.Name).
			Msg("error inserting permission")
		return models.Permission{}, translateError(err, ErrExecutingQuery)
	}

	return created, nil
}

func (r *permissionRepository) GetByID(ctx context.Context, permissionID int64) (models.Permission, error) {
	query, args, err := buildSelectPermissionsQuery(sq.Eq{"id": permissionID})
	if err != nil {
		return models.Permission{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	permission, err := scanPermission(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Permission{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*permissionRepository.GetByID").Msg("error selecting permission")
		return models.Permission{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return permission, nil
}

// GetByNames returns the permissions whose names are in names, dropping
// misses.
func (r *permissionRepository) GetByNames(ctx context.Context, names []string) ([]models.Permission, error) {
	if len(names) == 0 {
		return []models.Permission{}, nil
	}

	query, args, err := buildSelectPermissionsQuery(sq.Eq{"name": names})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.query(ctx, query, args, "*permissionRepository.GetByNames")
}

func (r *permissionRepository) List(ctx context.Context) ([]models.Permission, error) {
	query, args, err := buildSelectPermissionsQuery(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.query(ctx, query, args, "*permissionRepository.List")
}

func (r *permissionRepository) query(ctx context.Context, query string, args []any, funcName string) ([]models.Permission, error) {
	log := logger.FromContext(ctx)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting permissions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	permissions, err := collect(rows, scanPermission)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error scanning permissions")
		return nil, err
	}

	return permissions, nil
}

func (r *permissionRepository) Update(ctx context.Context, permission models.Permission) (models.Permission, error) {
	query, args, err := buildUpdatePermissionQuery(permission)
	if err != nil {
		return models.Permission{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanPermission(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Permission{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*permissionRepository.Update").
			Int64("permission_id", permission.PermissionID).
			Msg("error updating permission")
		return models.Permission{}, translateError(err, ErrExecutingQuery)
	}

	return updated, nil
}

func (r *permissionRepository) Delete(ctx context.Context, permissionID int64) error {
	query, args, err := buildDeletePermissionQuery(permissionID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return execAffectingOne(ctx, r.q, query, args, "*permissionRepository.Delete")
}

// AssignToRole grants the permission to the role; granting twice is a no-op.
func (r *permissionRepository) AssignToRole(ctx context.Context, roleID, permissionID int64) error {
	query, args, err := buildGrantPermissionQuery(roleID, permissionID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return exec(ctx, r.q, query, args, "*permissionRepository.AssignToRole")
}

// RemoveFromRole revokes the permission from the role. Revoking a pair that
// is not linked is a no-op.
func (r *permissionRepository) RemoveFromRole(ctx context.Context, roleID, permissionID int64) error {
	query, args, err := buildRevokePermissionQuery(roleID, permissionID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return exec(ctx, r.q, query, args, "*permissionRepository.RemoveFromRole")
}

func (r *permissionRepository) GetByRole(ctx context.Context, roleID int64) ([]models.Permission, error) {
	return r.GetByRoles(ctx, []int64{roleID})
}

func (r *permissionRepository) GetByRoles(ctx context.Context, roleIDs []int64) ([]models.Permission, error) {
	if len(roleIDs) == 0 {
		return []models.Permission{}, nil
	}

	query, args, err := buildSelectPermissionsByRolesQuery(roleIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.query(ctx, query, args, "*permissionRepository.GetByRoles")
}
