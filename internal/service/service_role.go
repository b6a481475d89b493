// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/store"
	"github.com/MKhiriev/go-admin-auth/models"
)

type roleService struct {
	transactor store.Transactor
	logger     *logger.Logger
}

func NewRoleService(transactor store.Transactor, logger *logger.Logger) RoleService {
	return &roleService{transactor: transactor, logger: logger}
}

func (s *roleService) List(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		var err error
		roles, err = uow.Roles().List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error listing roles: %w", err)
	}
	return roles, nil
}

func (s *roleService) GetByID(ctx context.Context, roleID int64) (models.Role, error) {
	var role models.Role
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		var err error
		role, err = uow.Roles().GetByID(ctx, roleID)
		return err
	})
	if err != nil {
		return models.Role{}, fmt.Errorf("error getting role %d: %w", roleID, err)
	}
	return role, nil
}

func (s *roleService) Create(ctx context.Context, request models.RoleRequest) (models.Role, error) {
	if err := validateRequest(ctx, request); err != nil {
		return models.Role{}, err
	}

	var role models.Role
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		var err error
		role, err = uow.Roles().Create(ctx, request.ToRole())
		return err
	})
	if err != nil {
		return models.Role{}, fmt.Errorf("error creating role: %w", err)
	}

	logger.FromContext(ctx).Info().Str("func", "*roleService.Create").Str("role", role.Name).Msg("role created")
	return role, nil
}

// Update overwrites name and description and, when given, the active flag.
func (s *roleService) Update(ctx context.Context, roleID int64, request models.RoleRequest) (models.Role, error) {
	if err := validateRequest(ctx, request); err != nil {
		return models.Role{}, err
	}

	var role models.Role
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		existing, err := uow.Roles().GetByID(ctx, roleID)
		if err != nil {
			return err
		}

		existing.Name = request.Name
		existing.Description = request.Description
		if request.IsActive != nil {
			existing.IsActive = *request.IsActive
		}

		role, err = uow.Roles().Update(ctx, existing)
		return err
	})
	if err != nil {
		return models.Role{}, fmt.Errorf("error updating role %d: %w", roleID, err)
	}
	return role, nil
}

func (s *roleService) Delete(ctx context.Context, roleID int64) error {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		return uow.Roles().Delete(ctx, roleID)
	})
	if err != nil {
		return fmt.Errorf("error deleting role %d: %w", roleID, err)
	}

	logger.FromContext(ctx).Info().Str("func", "*roleService.Delete").Int64("role_id", roleID).Msg("role deleted")
	return nil
}

// AssignToUser links the role to the user; an existing link is kept as is.
func (s *roleService) AssignToUser(ctx context.Context, roleID, userID int64) error {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		return uow.Roles().AssignToUser(ctx, userID, roleID)
	})
	if err != nil {
		return fmt.Errorf("error assigning role %d to user %d: %w", roleID, userID, err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "*roleService.AssignToUser").
		Int64("role_id", roleID).
		Int64("user_id", userID).
		Msg("role assigned")
	return nil
}

func (s *roleService) RemoveFromUser(ctx context.Context, roleID, userID int64) error {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		return uow.Roles().RemoveFromUser(ctx, userID, roleID)
	})
	if err != nil {
		return fmt.Errorf("error removing role %d from user %d: %w", roleID, userID, err)
	}
	return nil
}

// GetPermissions lists every permission granted to the role, active or not.
func (s *roleService) GetPermissions(ctx context.Context, roleID int64) ([]models.Permission, error) {
	var perms []models.Permission
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		if _, err := uow.Roles().GetByID(ctx, roleID); err != nil {
			return err
		}

		var err error
		perms, err = uow.Permissions().GetByRole(ctx, roleID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error listing permissions of role %d: %w", roleID, err)
	}
	return perms, nil
}
