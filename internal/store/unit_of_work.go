// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-admin-auth/internal/logger"
)

// DefaultTxAttempts is how many times a transaction is run when it keeps
// failing with a retryable database error.
const DefaultTxAttempts = 3

const txRetryDelay = 50 * time.Millisecond

// unitOfWork hands out repositories that all share one transaction.
type unitOfWork struct {
	users         UserRepository
	roles         RoleRepository
	permissions   PermissionRepository
	refreshTokens RefreshTokenRepository
}

func newUnitOfWork(q querier) *unitOfWork {
	return &unitOfWork{
		users:         NewUserRepository(q),
		roles:         NewRoleRepository(q),
		permissions:   NewPermissionRepository(q),
		refreshTokens: NewRefreshTokenRepository(q),
	}
}

func (u *unitOfWork) Users() UserRepository { return u.users }
func (u *unitOfWork) Roles() RoleRepository { return u.roles }
func (u *unitOfWork) Permissions() PermissionRepository { return u.permissions }
func (u *unitOfWork) RefreshTokens() RefreshTokenRepository { return u.refreshTokens }

// sqlTransactor implements [Transactor] on top of [DB].
type sqlTransactor struct {
	db          *DB
	maxAttempts int
}

// NewTransactor returns a [Transactor] that opens a new database transaction
// for every WithinTx call.
func NewTransactor(db *DB) Transactor {
	return &sqlTransactor{db: db, maxAttempts: DefaultTxAttempts}
}

// WithinTx runs fn in a fresh transaction. fn may be invoked again from
// scratch when the attempt failed with an error the classifier marks as
// retryable, so fn must not have side effects outside the transaction.
func (t *sqlTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= t.maxAttempts; attempt++ {
		err = t.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if t.db.errorClassificator.Classify(err) != Retryable || attempt == t.maxAttempts {
			return err
		}

		log.Warn().Err(err).
			Str("func", "*sqlTransactor.WithinTx").
			Int("attempt", attempt).
			Msg("retrying transaction after transient database error")

		timer := time.NewTimer(time.Duration(attempt) * txRetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return err
}

func (t *sqlTransactor) runOnce(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) (err error) {
	log := logger.FromContext(ctx)

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*sqlTransactor.runOnce").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(ctx, newUnitOfWork(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = ctx.Err(); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*sqlTransactor.runOnce").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
