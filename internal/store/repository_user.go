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

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It works against the "users" table through whatever querier it is bound
// to, normally the transaction of the current unit of work.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions. Password
// hashes are never logged.
type userRepository struct {
	q querier
}

// NewUserRepository constructs a [UserRepository] bound to q.
func NewUserRepository(q querier) UserRepository {
	return &userRepository{q: q}
}

// Create persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt, UpdatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrAlreadyExists].
//   - Any other driver-level error → [ErrExecutingQuery].
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Str("username", user.Username).Msg("error inserting user")
		return models.User{}, translateError(err, ErrExecutingQuery)
	}

	return created, nil
}

func (r *userRepository) GetByID(ctx context.Context, userID int64) (models.User, error) {
	return r.getOne(ctx, sq.Eq{"id": userID}, "*userRepository.GetByID")
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.getOne(ctx, sq.Eq{"username": username}, "*userRepository.GetByUsername")
}

func (r *userRepository) getOne(ctx context.Context, where sq.Eq, funcName string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(where)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// Update overwrites the mutable columns of the user identified by
// user.UserID and bumps updated_at.
func (r *userRepository) Update(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanUser(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Int64("user_id", user.UserID).Msg("error updating user")
		return models.User{}, translateError(err, ErrExecutingQuery)
	}

	return updated, nil
}

// Delete removes the user. Role assignments and refresh tokens go with it
// through ON DELETE CASCADE.
func (r *userRepository) Delete(ctx context.Context, userID int64) error {
	query, args, err := buildDeleteUserQuery(userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return execAffectingOne(ctx, r.q, query, args, "*userRepository.Delete")
}

// Search returns the requested page of users plus the total number of
// matching rows.
func (r *userRepository) Search(ctx context.Context, searchQuery models.UserSearchQuery) ([]models.User, int64, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountUsersQuery(searchQuery)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err = r.q.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*userRepository.Search").Msg("error counting users")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := buildSearchUsersQuery(searchQuery)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Search").Msg("error searching users")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	users, err := collect(rows, scanUser)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Search").Msg("error scanning users")
		return nil, 0, err
	}

	return users, total, nil
}

// execAffectingOne runs a DELETE/UPDATE that must hit a row and reports
// [ErrNotFound] when it hit none.
func execAffectingOne(ctx context.Context, q querier, query string, args []any, funcName string) error {
	log := logger.FromContext(ctx)

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return translateError(err, ErrExecutingStatement)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// exec runs a statement whose affected row count does not matter.
func exec(ctx context.Context, q querier, query string, args []any, funcName string) error {
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error executing statement")
		return translateError(err, ErrExecutingStatement)
	}
	return nil
}
