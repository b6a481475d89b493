// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/store"
	"github.com/MKhiriev/go-admin-auth/models"
)

// guard is the concrete implementation of Guard.
//
// The roles claim of an access token is never trusted. Authenticate reloads
// the user and the user's roles on every request, so a revoked role stops
// passing guards at once even though tokens issued before the change still
// list it in their claims until they expire.
type guard struct {
	transactor store.Transactor
	codec      TokenCodec
	logger     *logger.Logger
}

func NewGuard(transactor store.Transactor, codec TokenCodec, logger *logger.Logger) Guard {
	return &guard{
		transactor: transactor,
		codec:      codec,
		logger:     logger,
	}
}

// Authenticate turns a bearer token into a Principal holding the user's live
// active roles. Every failure, whether it is a bad signature, an expired
// token or a deleted or inactive user, yields ErrUnauthenticated.
func (g *guard) Authenticate(ctx context.Context, bearerToken string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	if bearerToken == "" {
		return models.Principal{}, ErrUnauthenticated
	}

	claims, err := g.codec.Decode(bearerToken)
	if err != nil {
		log.Debug().Err(err).Str("func", "*guard.Authenticate").Msg("access token rejected")
		return models.Principal{}, ErrUnauthenticated
	}

	userID, err := claims.GetUserID()
	if err != nil {
		return models.Principal{}, ErrUnauthenticated
	}

	var principal models.Principal
	err = g.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		user, err := uow.Users().GetByID(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnauthenticated
		}
		if err != nil {
			return fmt.Errorf("error loading user: %w", err)
		}
		if !user.IsActive {
			return ErrUnauthenticated
		}

		roles, err := uow.Roles().GetByUser(ctx, user.UserID)
		if err != nil {
			return fmt.Errorf("error loading user roles: %w", err)
		}

		principal = models.Principal{
			UserID:   user.UserID,
			Username: user.Username,
			Roles:    models.RoleNames(activeRoles(roles)),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			log.Debug().Str("func", "*guard.Authenticate").Int64("user_id", userID).Msg("token owner is missing or inactive")
		}
		return models.Principal{}, err
	}

	return principal, nil
}

// RequireRoles passes when the principal holds at least one of roles. An
// empty requirement always passes.
func (g *guard) RequireRoles(principal models.Principal, roles ...string) error {
	if len(roles) == 0 {
		return nil
	}

	if slices.ContainsFunc(roles, principal.HasRole) {
		return nil
	}

	return fmt.Errorf("%w: insufficient role", ErrForbidden)
}

// RequirePermissions passes when the principal holds every one of
// permissions through its current roles. With enforce false nothing is
// checked and the principal is returned as is. Otherwise the returned
// principal carries the resolved permission names.
func (g *guard) RequirePermissions(ctx context.Context, principal models.Principal, enforce bool, permissions ...string) (models.Principal, error) {
	if !enforce {
		return principal, nil
	}

	resolved, err := g.resolvePermissions(ctx, principal)
	if err != nil {
		return models.Principal{}, err
	}
	principal.Permissions = resolved

	var missing []string
	for _, p := range permissions {
		if !principal.HasPermission(p) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return principal, fmt.Errorf("%w: missing permissions %s", ErrForbidden, strings.Join(missing, ", "))
	}

	return principal, nil
}

// resolvePermissions returns the union of active permissions over the
// principal's active roles.
func (g *guard) resolvePermissions(ctx context.Context, principal models.Principal) ([]string, error) {
	var names []string
	err := g.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		roles, err := uow.Roles().GetByNames(ctx, principal.Roles)
		if err != nil {
			return fmt.Errorf("error loading roles: %w", err)
		}

		perms, err := uow.Permissions().GetByRoles(ctx, roleIDs(activeRoles(roles)))
		if err != nil {
			return fmt.Errorf("error loading permissions: %w", err)
		}

		names = models.PermissionNames(activePermissions(perms))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

// activeRoles drops deactivated roles; they grant nothing.
func activeRoles(roles []models.Role) []models.Role {
	active := make([]models.Role, 0, len(roles))
	for _, r := range roles {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active
}

func activePermissions(perms []models.Permission) []models.Permission {
	active := make([]models.Permission, 0, len(perms))
	for _, p := range perms {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active
}

func roleIDs(roles []models.Role) []int64 {
	ids := make([]int64, 0, len(roles))
	for _, r := range roles {
		ids = append(ids, r.RoleID)
	}
	return ids
}
