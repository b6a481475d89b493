// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-admin-auth/internal/crypto"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/store"
	"github.com/MKhiriev/go-admin-auth/models"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = 1_000_000
)

// userService is the concrete implementation of UserService.
type userService struct {
	transactor store.Transactor
	hasher     crypto.PasswordHasher

	now    func() time.Time
	logger *logger.Logger
}

func NewUserService(transactor store.Transactor, hasher crypto.PasswordHasher, logger *logger.Logger) UserService {
	return &userService{
		transactor: transactor,
		hasher:     hasher,
		now:        time.Now,
		logger:     logger,
	}
}

// Search returns one page of users. Page defaults to 1 and the page size to
// DefaultPageSize, capped at MaxPageSize.
func (s *userService) Search(ctx context.Context, query models.UserSearchQuery) (models.PagedResult[models.UserDTO], error) {
	query.Page = min(max(query.Page, 1), MaxPage)
	if query.PageSize < 1 {
		query.PageSize = DefaultPageSize
	}
	query.PageSize = min(query.PageSize, MaxPageSize)

	var result models.PagedResult[models.UserDTO]
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		users, total, err := uow.Users().Search(ctx, query)
		if err != nil {
			return fmt.Errorf("error searching users: %w", err)
		}

		items := make([]models.UserDTO, 0, len(users))
		for _, u := range users {
			dto, err := withRoles(ctx, uow, u)
			if err != nil {
				return err
			}
			items = append(items, dto)
		}

		result = models.NewPagedResult(items, total, query.Page, query.PageSize)
		return nil
	})

	return result, err
}

func (s *userService) GetByID(ctx context.Context, userID int64) (models.UserDTO, error) {
	var dto models.UserDTO
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		user, err := uow.Users().GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("error getting user %d: %w", userID, err)
		}

		dto, err = withRoles(ctx, uow, user)
		return err
	})

	return dto, err
}

// Create stores a new user and assigns the requested roles. An unknown role
// name fails the whole operation with ErrValidation.
func (s *userService) Create(ctx context.Context, request models.UserCreateRequest) (models.UserDTO, error) {
	if err := validateRequest(ctx, request); err != nil {
		return models.UserDTO{}, err
	}

	hash, err := s.hasher.Hash(request.Password)
	if err != nil {
		return models.UserDTO{}, fmt.Errorf("error hashing password: %w", err)
	}

	var dto models.UserDTO
	err = s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		roles, err := lookupRoles(ctx, uow, request.Roles)
		if err != nil {
			return err
		}

		created, err := uow.Users().Create(ctx, request.ToUser(hash))
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}

		for _, r := range roles {
			if err = uow.Roles().AssignToUser(ctx, created.UserID, r.RoleID); err != nil {
				return fmt.Errorf("error assigning role %q: %w", r.Name, err)
			}
		}

		dto = models.ToUserDTO(created, models.RoleNames(roles))
		return nil
	})
	if err != nil {
		return models.UserDTO{}, err
	}

	logger.FromContext(ctx).Info().
		Str("func", "*userService.Create").
		Int64("user_id", dto.UserID).
		Str("username", dto.Username).
		Msg("user created")
	return dto, nil
}

// Update applies the non-nil fields of request. Setting a new password or
// deactivating the account revokes all of the user's refresh tokens.
func (s *userService) Update(ctx context.Context, userID int64, request models.UserUpdateRequest) (models.UserDTO, error) {
	if err := validateRequest(ctx, request); err != nil {
		return models.UserDTO{}, err
	}

	var hash string
	if request.Password != nil {
		var err error
		if hash, err = s.hasher.Hash(*request.Password); err != nil {
			return models.UserDTO{}, fmt.Errorf("error hashing password: %w", err)
		}
	}

	var dto models.UserDTO
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		user, err := uow.Users().GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("error getting user %d: %w", userID, err)
		}

		updated := request.ApplyTo(user)
		if hash != "" {
			updated.PasswordHash = hash
		}

		if updated, err = uow.Users().Update(ctx, updated); err != nil {
			return fmt.Errorf("error updating user %d: %w", userID, err)
		}

		if hash != "" || (user.IsActive && !updated.IsActive) {
			if _, err = uow.RefreshTokens().RevokeAllForUser(ctx, userID, s.now()); err != nil {
				return fmt.Errorf("error revoking refresh tokens: %w", err)
			}
		}

		dto, err = withRoles(ctx, uow, updated)
		return err
	})

	return dto, err
}

func (s *userService) Delete(ctx context.Context, userID int64) error {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		return uow.Users().Delete(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("error deleting user %d: %w", userID, err)
	}

	logger.FromContext(ctx).Info().Str("func", "*userService.Delete").Int64("user_id", userID).Msg("user deleted")
	return nil
}

// GetOwnRoles returns the names of the caller's active roles.
func (s *userService) GetOwnRoles(ctx context.Context, userID int64) ([]string, error) {
	var names []string
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		roles, err := uow.Roles().GetByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("error loading roles: %w", err)
		}

		names = models.RoleNames(activeRoles(roles))
		return nil
	})

	return names, err
}

// GetOwnPermissions returns the sorted union of active permissions over the
// caller's active roles.
func (s *userService) GetOwnPermissions(ctx context.Context, userID int64) ([]string, error) {
	var names []string
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		roles, err := uow.Roles().GetByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("error loading roles: %w", err)
		}

		perms, err := uow.Permissions().GetByRoles(ctx, roleIDs(activeRoles(roles)))
		if err != nil {
			return fmt.Errorf("error loading permissions: %w", err)
		}

		names = models.PermissionNames(activePermissions(perms))
		slices.Sort(names)
		return nil
	})

	return names, err
}

// UpdateOwnRoles replaces the caller's role set. Every name must exist,
// otherwise ErrValidation names the missing roles and nothing is changed.
func (s *userService) UpdateOwnRoles(ctx context.Context, userID int64, roleNames []string) (models.UserDTO, error) {
	var dto models.UserDTO
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		user, err := uow.Users().GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("error getting user %d: %w", userID, err)
		}

		roles, err := lookupRoles(ctx, uow, roleNames)
		if err != nil {
			return err
		}

		if err = uow.Roles().ClearForUser(ctx, userID); err != nil {
			return fmt.Errorf("error clearing roles: %w", err)
		}
		for _, r := range roles {
			if err = uow.Roles().AssignToUser(ctx, userID, r.RoleID); err != nil {
				return fmt.Errorf("error assigning role %q: %w", r.Name, err)
			}
		}

		dto = models.ToUserDTO(user, models.RoleNames(roles))
		return nil
	})
	if err != nil {
		return models.UserDTO{}, err
	}

	logger.FromContext(ctx).Info().
		Str("func", "*userService.UpdateOwnRoles").
		Int64("user_id", userID).
		Strs("roles", dto.Roles).
		Msg("user roles replaced")
	return dto, nil
}

// ChangePassword replaces the caller's password after checking the current
// one and revokes all of the caller's refresh tokens.
func (s *userService) ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest) error {
	if err := validateRequest(ctx, request); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(request.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		user, err := uow.Users().GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("error getting user %d: %w", userID, err)
		}

		if !s.hasher.Verify(request.CurrentPassword, user.PasswordHash) {
			return ErrInvalidCredentials
		}

		user.PasswordHash = hash
		if _, err = uow.Users().Update(ctx, user); err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}

		if _, err = uow.RefreshTokens().RevokeAllForUser(ctx, userID, s.now()); err != nil {
			return fmt.Errorf("error revoking refresh tokens: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Str("func", "*userService.ChangePassword").Int64("user_id", userID).Msg("password changed")
	return nil
}

// lookupRoles resolves role names, failing with ErrValidation when any of
// them does not exist. Duplicate names are collapsed.
func lookupRoles(ctx context.Context, uow store.UnitOfWork, names []string) ([]models.Role, error) {
	unique := uniqueNames(names)
	if len(unique) == 0 {
		return []models.Role{}, nil
	}

	roles, err := uow.Roles().GetByNames(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("error loading roles: %w", err)
	}

	if len(roles) != len(unique) {
		found := models.RoleNames(roles)
		var missing []string
		for _, n := range unique {
			if !slices.Contains(found, n) {
				missing = append(missing, n)
			}
		}
		return nil, fmt.Errorf("%w: roles not found: %s", ErrValidation, strings.Join(missing, ", "))
	}

	return roles, nil
}

func uniqueNames(names []string) []string {
	unique := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" && !slices.Contains(unique, n) {
			unique = append(unique, n)
		}
	}
	return unique
}

func withRoles(ctx context.Context, uow store.UnitOfWork, user models.User) (models.UserDTO, error) {
	roles, err := uow.Roles().GetByUser(ctx, user.UserID)
	if err != nil {
		return models.UserDTO{}, fmt.Errorf("error loading roles of user %d: %w", user.UserID, err)
	}
	return models.ToUserDTO(user, models.RoleNames(roles)), nil
}

