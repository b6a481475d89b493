// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/MKhiriev/go-admin-auth/internal/crypto"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/mock"
	"github.com/MKhiriev/go-admin-auth/internal/store"
	"github.com/MKhiriev/go-admin-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestAuthService_Login_IssuesTokenWithActiveRoles(t *testing.T) {
	f := newFixture(t)
	f.addRole(t, "Editor", true)
	f.addRole(t, "Legacy", false)
	alice := f.addUser(t, "alice", true, "Editor", "Legacy")
	svc := f.authService(t, true)

	pair, err := svc.Login(context.Background(), "alice", testPassword)
	require.NoError(t, err)

	assert.Equal(t, models.TokenTypeBearer, pair.TokenType)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), pair.ExpiresAt, time.Minute)

	claims, err := f.codec.Decode(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(alice.UserID, 10), claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{"Editor"}, claims.Roles)
	assert.Equal(t, testIssuer, claims.Issuer)

	tokens := f.tokensOf(alice.UserID)
	require.Len(t, tokens, 1)
	assert.Equal(t, pair.RefreshToken, tokens[0].Token)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), tokens[0].ExpiresAt, time.Minute)
}

func TestAuthService_Login_UnknownUserAndWrongPasswordLookTheSame(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "alice", true)
	svc := f.authService(t, true)

	_, errUnknown := svc.Login(context.Background(), "mallory", testPassword)
	_, errWrong := svc.Login(context.Background(), "alice", "not-the-password")

	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	assert.Empty(t, f.store.snapshot().tokens)
}

func TestAuthService_Login_UnknownUserStillVerifiesHash(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	hasher := mock.NewMockPasswordHasher(ctrl)

	hasher.EXPECT().Hash(dummyPassword).Return("dummy-hash", nil)
	hasher.EXPECT().Verify("whatever", "dummy-hash").Return(false).Times(1)

	svc, err := NewAuthService(f.store, hasher, f.codec, crypto.NewTokenGenerator(), testAppConfig(true), logger.Nop())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	f := newFixture(t)
	bob := f.addUser(t, "bob", false)
	svc := f.authService(t, true)

	_, err := svc.Login(context.Background(), "bob", testPassword)

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, f.tokensOf(bob.UserID))
}

func TestAuthService_Login_RefreshDisabled(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice", true)
	svc := f.authService(t, false)

	pair, err := svc.Login(context.Background(), "alice", testPassword)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.Empty(t, pair.RefreshToken)
	assert.Empty(t, f.tokensOf(alice.UserID))
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t)

	users := mock.NewMockUserRepository(ctrl)
	uow := mock.NewMockUnitOfWork(ctrl)
	transactor := mock.NewMockTransactor(ctrl)

	dbErr := errors.New("connection reset")
	users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(models.User{}, dbErr)
	uow.EXPECT().Users().Return(users)
	transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, store.UnitOfWork) error) error {
			return fn(ctx, uow)
		})

	svc, err := NewAuthService(transactor, f.hasher, f.codec, crypto.NewTokenGenerator(), testAppConfig(true), logger.Nop())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice", testPassword)
	require.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// ─────────────────────────────────────────────
// Refresh
// ─────────────────────────────────────────────

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	f := newFixture(t)
	f.addRole(t, "User", true)
	alice := f.addUser(t, "alice", true, "User")
	svc := f.authService(t, true)
	ctx := context.Background()

	first, err := svc.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	claims, err := f.codec.Decode(second.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, []string{"User"}, claims.Roles)

	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)

	third, err := svc.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, third.RefreshToken)

	var rotated models.RefreshToken
	for _, tok := range f.tokensOf(alice.UserID) {
		if tok.Token == first.RefreshToken {
			rotated = tok
		}
	}
	require.True(t, rotated.IsRevoked)
	require.NotNil(t, rotated.ReplacedByToken)
	assert.Equal(t, second.RefreshToken, *rotated.ReplacedByToken)
	assert.NotNil(t, rotated.RevokedAt)
}

func TestAuthService_Refresh_Disabled(t *testing.T) {
	f := newFixture(t)
	svc := f.authService(t, false)

	_, err := svc.Refresh(context.Background(), "anything")

	assert.ErrorIs(t, err, ErrFeatureDisabled)
}

func TestAuthService_Refresh_RejectsUnknownTokens(t *testing.T) {
	f := newFixture(t)
	svc := f.authService(t, true)

	for _, token := range []string{"", "no-such-token"} {
		_, err := svc.Refresh(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidOrExpiredToken, "token %q", token)
	}
}

func TestAuthService_Refresh_Expired(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "alice", true)
	svc := f.authService(t, true)

	pair, err := svc.Login(context.Background(), "alice", testPassword)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestAuthService_Refresh_InactiveUserKeepsToken(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice", true)
	svc := f.authService(t, true)

	pair, err := svc.Login(context.Background(), "alice", testPassword)
	require.NoError(t, err)

	f.setUserActive(t, alice.UserID, false)

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)

	tokens := f.tokensOf(alice.UserID)
	require.Len(t, tokens, 1)
	assert.False(t, tokens[0].IsRevoked)
}

func TestAuthService_Refresh_ConcurrentRotationLoses(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t)

	existing := models.RefreshToken{
		TokenID:   10,
		UserID:    1,
		Token:     "old-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	tokens := mock.NewMockRefreshTokenRepository(ctrl)
	users := mock.NewMockUserRepository(ctrl)
	roles := mock.NewMockRoleRepository(ctrl)
	uow := mock.NewMockUnitOfWork(ctrl)
	transactor := mock.NewMockTransactor(ctrl)

	uow.EXPECT().RefreshTokens().Return(tokens).AnyTimes()
	uow.EXPECT().Users().Return(users).AnyTimes()
	uow.EXPECT().Roles().Return(roles).AnyTimes()

	tokens.EXPECT().GetByToken(gomock.Any(), "old-token").Return(existing, nil)
	users.EXPECT().GetByID(gomock.Any(), int64(1)).Return(models.User{UserID: 1, Username: "alice", IsActive: true}, nil)
	roles.EXPECT().GetByUser(gomock.Any(), int64(1)).Return([]models.Role{}, nil)
	tokens.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tok models.RefreshToken) (models.RefreshToken, error) {
			tok.TokenID = 11
			return tok, nil
		})
	tokens.EXPECT().Revoke(gomock.Any(), int64(10), gomock.Not(gomock.Nil()), gomock.Any()).Return(store.ErrAlreadyRevoked)

	transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, store.UnitOfWork) error) error {
			return fn(ctx, uow)
		})

	svc, err := NewAuthService(transactor, f.hasher, f.codec, crypto.NewTokenGenerator(), testAppConfig(true), logger.Nop())
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), "old-token")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestAuthService_Refresh_FailedRotationPersistsNothing(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice", true)
	svc := f.authService(t, true)

	pair, err := svc.Login(context.Background(), "alice", testPassword)
	require.NoError(t, err)

	svc.tokenGenerator = failingGenerator{}

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, ErrTokenCreationFailed)

	tokens := f.tokensOf(alice.UserID)
	require.Len(t, tokens, 1)
	assert.False(t, tokens[0].IsRevoked)
}

type failingGenerator struct{}

func (failingGenerator) Generate() (string, error) { return "", errors.New("entropy exhausted") }

// ─────────────────────────────────────────────
// Revocation
// ─────────────────────────────────────────────

func TestAuthService_RevokeRefreshToken_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "alice", true)
	svc := f.authService(t, true)
	ctx := context.Background()

	pair, err := svc.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeRefreshToken(ctx, pair.RefreshToken))
	require.NoError(t, svc.RevokeRefreshToken(ctx, pair.RefreshToken))
	require.NoError(t, svc.RevokeRefreshToken(ctx, "unknown"))
	require.NoError(t, svc.RevokeRefreshToken(ctx, ""))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestAuthService_RevokeAllForUser(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice", true)
	bob := f.addUser(t, "bob", true)
	svc := f.authService(t, true)
	ctx := context.Background()

	for range 2 {
		_, err := svc.Login(ctx, "alice", testPassword)
		require.NoError(t, err)
	}
	bobPair, err := svc.Login(ctx, "bob", testPassword)
	require.NoError(t, err)

	revoked, err := svc.RevokeAllForUser(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), revoked)

	revoked, err = svc.RevokeAllForUser(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Zero(t, revoked)

	_, err = svc.Refresh(ctx, bobPair.RefreshToken)
	assert.NoError(t, err, "other users keep their tokens")
	assert.NotEmpty(t, f.tokensOf(bob.UserID))
}
