// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransactor(t *testing.T) (Transactor, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock := newTestSQLMock(t)
	return NewTransactor(newDB(conn, logger.Nop())), mock
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	tx, mock := newTestTransactor(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO user_roles").WithArgs(int64(1), int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM role_permissions").WithArgs(int64(2), int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tx.WithinTx(context.Background(), func(ctx context.Context, uow UnitOfWork) error {
		if err := uow.Roles().AssignToUser(ctx, 1, 2); err != nil {
			return err
		}
		return uow.Permissions().RemoveFromRole(ctx, 2, 3)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	tx, mock := newTestTransactor(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO refresh_tokens").WillReturnRows(refreshTokenRows())
	mock.ExpectRollback()

	calls := 0
	err := tx.WithinTx(context.Background(), func(ctx context.Context, uow UnitOfWork) error {
		calls++
		_, _ = uow.RefreshTokens().Add(ctx, models.RefreshToken{UserID: 1, Token: "t"})
		return ErrAlreadyRevoked
	})

	assert.ErrorIs(t, err, ErrAlreadyRevoked)
	assert.Equal(t, 1, calls, "non-retryable errors must not be retried")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RetriesTransientErrors(t *testing.T) {
	tx, mock := newTestTransactor(t)

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := tx.WithinTx(context.Background(), func(ctx context.Context, uow UnitOfWork) error {
		calls++
		if calls == 1 {
			return pgError(pgerrcode.SerializationFailure)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_GivesUpAfterMaxAttempts(t *testing.T) {
	tx, mock := newTestTransactor(t)

	for range DefaultTxAttempts {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	calls := 0
	err := tx.WithinTx(context.Background(), func(ctx context.Context, uow UnitOfWork) error {
		calls++
		return pgError(pgerrcode.DeadlockDetected)
	})

	require.Error(t, err)
	assert.Equal(t, DefaultTxAttempts, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackAndRepanics(t *testing.T) {
	tx, mock := newTestTransactor(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = tx.WithinTx(context.Background(), func(ctx context.Context, uow UnitOfWork) error {
			panic("kaboom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_DoesNotCommitCancelledContext(t *testing.T) {
	tx, mock := newTestTransactor(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	ctx, cancel := context.WithCancel(context.Background())
	err := tx.WithinTx(ctx, func(ctx context.Context, uow UnitOfWork) error {
		cancel()
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithinTx_BeginAndCommitFailures(t *testing.T) {
	t.Run("begin", func(t *testing.T) {
		tx, mock := newTestTransactor(t)
		mock.ExpectBegin().WillReturnError(errors.New("no connection"))

		err := tx.WithinTx(context.Background(), func(ctx context.Context, uow UnitOfWork) error {
			t.Fatal("fn must not run without a transaction")
			return nil
		})
		assert.ErrorIs(t, err, ErrBeginningTransaction)
	})

	t.Run("commit", func(t *testing.T) {
		tx, mock := newTestTransactor(t)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

		err := tx.WithinTx(context.Background(), func(ctx context.Context, uow UnitOfWork) error {
			return nil
		})
		assert.ErrorIs(t, err, ErrCommitingTransaction)
	})
}
