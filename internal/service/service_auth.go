// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-admin-auth/internal/config"
	"github.com/MKhiriev/go-admin-auth/internal/crypto"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/store"
	"github.com/MKhiriev/go-admin-auth/models"
)

// dummyPassword is hashed once at start-up. Logins for unknown usernames are
// verified against that hash so they cost the same as a wrong password.
const dummyPassword = "go-admin-auth:no-such-user"

// authService is the concrete implementation of AuthService.
//
// Access tokens are stateless and only checked by signature and expiry.
// Refresh tokens live in the database: every use rotates them and they can be
// revoked one by one or all at once.
type authService struct {
	transactor     store.Transactor
	hasher         crypto.PasswordHasher
	codec          TokenCodec
	tokenGenerator crypto.TokenGenerator

	// refreshEnabled switches the whole refresh-token flow on or off.
	refreshEnabled  bool
	refreshLifetime time.Duration

	// dummyHash is verified against when the username does not exist.
	dummyHash string

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an AuthService. It fails when the dummy hash used
// for unknown-user logins cannot be computed.
func NewAuthService(
	transactor store.Transactor,
	hasher crypto.PasswordHasher,
	codec TokenCodec,
	tokenGenerator crypto.TokenGenerator,
	cfg config.App,
	logger *logger.Logger,
) (AuthService, error) {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy password hash: %w", err)
	}

	return &authService{
		transactor:      transactor,
		hasher:          hasher,
		codec:           codec,
		tokenGenerator:  tokenGenerator,
		refreshEnabled:  cfg.RefreshEnabled(),
		refreshLifetime: cfg.RefreshTokenLifetime(),
		dummyHash:       dummyHash,
		now:             time.Now,
		logger:          logger,
	}, nil
}

// Login checks the credentials and issues an access token carrying the
// user's current role names. When refresh tokens are enabled a refresh token
// is created in the same transaction.
//
// An unknown username, an inactive account and a wrong password all return
// ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, username, password string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	var pair models.TokenPair
	err := a.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		user, err := uow.Users().GetByUsername(ctx, username)
		if errors.Is(err, store.ErrNotFound) {
			a.hasher.Verify(password, a.dummyHash)
			return ErrInvalidCredentials
		}
		if err != nil {
			return fmt.Errorf("error looking up user: %w", err)
		}

		if !a.hasher.Verify(password, user.PasswordHash) || !user.IsActive {
			return ErrInvalidCredentials
		}

		pair, err = a.issueTokenPair(ctx, uow, user, nil)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Info().Str("func", "*authService.Login").Str("username", username).Msg("login rejected")
		} else {
			log.Err(err).Str("func", "*authService.Login").Str("username", username).Msg("login failed")
		}
		return models.TokenPair{}, err
	}

	log.Info().Str("func", "*authService.Login").Str("username", username).Msg("user logged in")
	return pair, nil
}

// Refresh rotates a refresh token: a new one is stored and the presented one
// is revoked with replaced_by_token pointing at its successor. Both writes
// commit together or not at all.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if !a.refreshEnabled {
		return models.TokenPair{}, ErrFeatureDisabled
	}
	if refreshToken == "" {
		return models.TokenPair{}, ErrInvalidOrExpiredToken
	}

	var pair models.TokenPair
	err := a.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		now := a.now()

		existing, err := uow.RefreshTokens().GetByToken(ctx, refreshToken)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		if err != nil {
			return fmt.Errorf("error looking up refresh token: %w", err)
		}

		if existing.IsRevoked {
			if existing.ReplacedByToken != nil {
				// TODO: revoke every token of the user once reuse of a rotated token is treated as theft.
				log.Warn().
					Str("func", "*authService.Refresh").
					Int64("user_id", existing.UserID).
					Int64("token_id", existing.TokenID).
					Msg("rotated refresh token presented again")
			}
			return ErrInvalidOrExpiredToken
		}
		if !existing.IsValid(now) {
			return ErrInvalidOrExpiredToken
		}

		user, err := uow.Users().GetByID(ctx, existing.UserID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		if err != nil {
			return fmt.Errorf("error looking up token owner: %w", err)
		}
		if !user.IsActive {
			return ErrInvalidOrExpiredToken
		}

		pair, err = a.issueTokenPair(ctx, uow, user, &existing)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidOrExpiredToken) {
			log.Err(err).Str("func", "*authService.Refresh").Msg("refresh failed")
		}
		return models.TokenPair{}, err
	}

	return pair, nil
}

// issueTokenPair signs an access token with the user's current active roles
// and, if enabled, stores a fresh refresh token. When previous is not nil it
// is revoked in favour of the new token.
func (a *authService) issueTokenPair(ctx context.Context, uow store.UnitOfWork, user models.User, previous *models.RefreshToken) (models.TokenPair, error) {
	roles, err := uow.Roles().GetByUser(ctx, user.UserID)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error loading user roles: %w", err)
	}

	accessToken, err := a.codec.Issue(user.UserID, user.Username, models.RoleNames(activeRoles(roles)))
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	pair := models.TokenPair{
		AccessToken: accessToken.String(),
		TokenType:   models.TokenTypeBearer,
		ExpiresAt:   accessToken.ExpiresAt,
	}

	if !a.refreshEnabled {
		return pair, nil
	}

	now := a.now()
	refreshToken, err := a.mintRefreshToken(ctx, uow, user.UserID, now)
	if err != nil {
		return models.TokenPair{}, err
	}
	pair.RefreshToken = refreshToken.Token

	if previous != nil {
		err = uow.RefreshTokens().Revoke(ctx, previous.TokenID, &refreshToken.Token, now)
		if errors.Is(err, store.ErrAlreadyRevoked) {
			logger.FromContext(ctx).Warn().
				Str("func", "*authService.issueTokenPair").
				Int64("user_id", user.UserID).
				Int64("token_id", previous.TokenID).
				Msg("refresh token was rotated concurrently")
			return models.TokenPair{}, ErrInvalidOrExpiredToken
		}
		if err != nil {
			return models.TokenPair{}, fmt.Errorf("error revoking rotated refresh token: %w", err)
		}
	}

	return pair, nil
}

func (a *authService) mintRefreshToken(ctx context.Context, uow store.UnitOfWork, userID int64, now time.Time) (models.RefreshToken, error) {
	token, err := a.tokenGenerator.Generate()
	if err != nil {
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	created, err := uow.RefreshTokens().Add(ctx, models.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(a.refreshLifetime),
	})
	if err != nil {
		return models.RefreshToken{}, fmt.Errorf("error storing refresh token: %w", err)
	}

	return created, nil
}

// RevokeRefreshToken revokes a single refresh token. Tokens that do not exist
// or are already revoked are ignored.
func (a *authService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	return a.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		existing, err := uow.RefreshTokens().GetByToken(ctx, refreshToken)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error looking up refresh token: %w", err)
		}
		if existing.IsRevoked {
			return nil
		}

		err = uow.RefreshTokens().Revoke(ctx, existing.TokenID, nil, a.now())
		if err != nil && !errors.Is(err, store.ErrAlreadyRevoked) {
			return fmt.Errorf("error revoking refresh token: %w", err)
		}

		logger.FromContext(ctx).Info().
			Str("func", "*authService.RevokeRefreshToken").
			Int64("user_id", existing.UserID).
			Msg("refresh token revoked")
		return nil
	})
}

func (a *authService) RevokeAllForUser(ctx context.Context, userID int64) (int64, error) {
	var revoked int64
	err := a.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		var err error
		revoked, err = uow.RefreshTokens().RevokeAllForUser(ctx, userID, a.now())
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("error revoking refresh tokens: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "*authService.RevokeAllForUser").
		Int64("user_id", userID).
		Int64("revoked", revoked).
		Msg("all refresh tokens revoked")
	return revoked, nil
}
