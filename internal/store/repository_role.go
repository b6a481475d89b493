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

// roleRepository is the PostgreSQL-backed implementation of [RoleRepository]
// over the "roles" and "user_roles" tables.
type roleRepository struct {
	q querier
}

// NewRoleRepository constructs a [RoleRepository] bound to q.
func NewRoleRepository(q querier) RoleRepository {
	return &roleRepository{q: q}
}

func (r *roleRepository) Create(ctx context.Context, role models.Role) (models.Role, error) {
	query, args, err := buildInsertRoleQuery(role)
	if err != nil {
		return models.Role{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanRole(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*roleRepository.Create").Str("role", role.Name).Msg("error inserting role")
		return models.Role{}, translateError(err, ErrExecutingQuery)
	}

	return created, nil
}

func (r *roleRepository) GetByID(ctx context.Context, roleID int64) (models.Role, error) {
	return r.getOne(ctx, sq.Eq{"id": roleID})
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (models.Role, error) {
	return r.getOne(ctx, sq.Eq{"name": name})
}

func (r *roleRepository) getOne(ctx context.Context, where sq.Eq) (models.Role, error) {
	query, args, err := buildSelectRolesQuery(where)
	if err != nil {
		return models.Role{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	role, err := scanRole(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Role{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*roleRepository.getOne").Msg("error selecting role")
		return models.Role{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return role, nil
}

// GetByNames returns the roles whose names are in names. Unknown names are
// simply absent from the result; callers compare lengths to detect them.
func (r *roleRepository) GetByNames(ctx context.Context, names []string) ([]models.Role, error) {
	if len(names) == 0 {
		return []models.Role{}, nil
	}
	return r.list(ctx, sq.Eq{"name": names}, "*roleRepository.GetByNames")
}

// GetByIDs returns the roles whose ids are in roleIDs, dropping misses.
func (r *roleRepository) GetByIDs(ctx context.Context, roleIDs []int64) ([]models.Role, error) {
	if len(roleIDs) == 0 {
		return []models.Role{}, nil
	}
	return r.list(ctx, sq.Eq{"id": roleIDs}, "*roleRepository.GetByIDs")
}

func (r *roleRepository) List(ctx context.Context) ([]models.Role, error) {
	return r.list(ctx, nil, "*roleRepository.List")
}

func (r *roleRepository) list(ctx context.Context, where sq.Sqlizer, funcName string) ([]models.Role, error) {
	query, args, err := buildSelectRolesQuery(where)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.query(ctx, query, args, funcName)
}

func (r *roleRepository) query(ctx context.Context, query string, args []any, funcName string) ([]models.Role, error) {
	log := logger.FromContext(ctx)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting roles")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	roles, err := collect(rows, scanRole)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error scanning roles")
		return nil, err
	}

	return roles, nil
}

func (r *roleRepository) Update(ctx context.Context, role models.Role) (models.Role, error) {
	query, args, err := buildUpdateRoleQuery(role)
	if err != nil {
		return models.Role{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanRole(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Role{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*roleRepository.Update").Int64("role_id", role.RoleID).Msg("error updating role")
		return models.Role{}, translateError(err, ErrExecutingQuery)
	}

	return updated, nil
}

func (r *roleRepository) Delete(ctx context.Context, roleID int64) error {
	query, args, err := buildDeleteRoleQuery(roleID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return execAffectingOne(ctx, r.q, query, args, "*roleRepository.Delete")
}

// AssignToUser links the role to the user. Assigning an existing pair is a
// no-op; a missing user or role yields [ErrNotFound].
func (r *roleRepository) AssignToUser(ctx context.Context, userID, roleID int64) error {
	query, args, err := buildAssignRoleQuery(userID, roleID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return exec(ctx, r.q, query, args, "*roleRepository.AssignToUser")
}

// RemoveFromUser unlinks the role from the user. Removing a pair that is not
// linked is a no-op.
func (r *roleRepository) RemoveFromUser(ctx context.Context, userID, roleID int64) error {
	query, args, err := buildRemoveRoleQuery(userID, roleID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return exec(ctx, r.q, query, args, "*roleRepository.RemoveFromUser")
}

func (r *roleRepository) ClearForUser(ctx context.Context, userID int64) error {
	query, args, err := buildClearRolesQuery(userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return exec(ctx, r.q, query, args, "*roleRepository.ClearForUser")
}

// GetByUser returns every role currently assigned to the user, active or
// not, ordered by name.
func (r *roleRepository) GetByUser(ctx context.Context, userID int64) ([]models.Role, error) {
	query, args, err := buildSelectRolesByUserQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.query(ctx, query, args, "*roleRepository.GetByUser")
}
