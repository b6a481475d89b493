// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/models"
)

// refreshTokenRepository is the PostgreSQL-backed implementation of
// [RefreshTokenRepository] over the "refresh_tokens" table.
//
// Token values are credentials: they are used as query arguments but never
// written to the log.
type refreshTokenRepository struct {
	q querier
}

// NewRefreshTokenRepository constructs a [RefreshTokenRepository] bound to q.
func NewRefreshTokenRepository(q querier) RefreshTokenRepository {
	return &refreshTokenRepository{q: q}
}

func (r *refreshTokenRepository) Add(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error) {
	query, args, err := buildInsertRefreshTokenQuery(token)
	if err != nil {
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanRefreshToken(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*refreshTokenRepository.Add").
			Int64("user_id", token.UserID).
			Msg("error inserting refresh token")
		return models.RefreshToken{}, translateError(err, ErrExecutingQuery)
	}

	return created, nil
}

func (r *refreshTokenRepository) GetByToken(ctx context.Context, token string) (models.RefreshToken, error) {
	query, args, err := buildSelectRefreshTokenQuery(token)
	if err != nil {
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	found, err := scanRefreshToken(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.RefreshToken{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*refreshTokenRepository.GetByToken").Msg("error selecting refresh token")
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// Revoke marks the token row revoked. The UPDATE is conditional on the row
// still being active, therefore a concurrent rotation of the same token makes
// exactly one caller see [ErrAlreadyRevoked].
func (r *refreshTokenRepository) Revoke(ctx context.Context, tokenID int64, replacedBy *string, revokedAt time.Time) error {
	query, args, err := buildRevokeRefreshTokenQuery(tokenID, replacedBy, revokedAt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = execAffectingOne(ctx, r.q, query, args, "*refreshTokenRepository.Revoke")
	if errors.Is(err, ErrNotFound) {
		return ErrAlreadyRevoked
	}

	return err
}

func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64, revokedAt time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRevokeAllRefreshTokensQuery(userID, revokedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.RevokeAllForUser").Int64("user_id", userID).Msg("error revoking refresh tokens")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

// GetValidTokensForUser lists tokens that are neither revoked nor expired at
// now, newest first.
func (r *refreshTokenRepository) GetValidTokensForUser(ctx context.Context, userID int64, now time.Time) ([]models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectValidRefreshTokensQuery(userID, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.GetValidTokensForUser").Int64("user_id", userID).Msg("error selecting refresh tokens")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	tokens, err := collect(rows, scanRefreshToken)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.GetValidTokensForUser").Msg("error scanning refresh tokens")
		return nil, err
	}

	return tokens, nil
}

func (r *refreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := buildDeleteExpiredRefreshTokensQuery(before)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*refreshTokenRepository.DeleteExpired").Msg("error deleting expired refresh tokens")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}
