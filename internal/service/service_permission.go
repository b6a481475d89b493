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

type permissionService struct {
	transactor store.Transactor
	logger     *logger.Logger
}

func NewPermissionService(transactor store.Transactor, logger *logger.Logger) PermissionService {
	return &permissionService{transactor: transactor, logger: logger}
}

func (s *permissionService) List(ctx context.Context) ([]models.Permission, error) {
	var perms []models.Permission
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		var err error
		perms, err = uow.Permissions().List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error listing permissions: %w", err)
	}
	return perms, nil
}

func (s *permissionService) GetByID(ctx context.Context, permissionID int64) (models.Permission, error) {
	var perm models.Permission
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		var err error
		perm, err = uow.Permissions().GetByID(ctx, permissionID)
		return err
	})
	if err != nil {
		return models.Permission{}, fmt.Errorf("error getting permission %d: %w", permissionID, err)
	}
	return perm, nil
}

func (s *permissionService) Create(ctx context.Context, request models.PermissionRequest) (models.Permission, error) {
	if err := validateRequest(ctx, request); err != nil {
		return models.Permission{}, err
	}

	var perm models.Permission
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		var err error
		perm, err = uow.Permissions().Create(ctx, request.ToPermission())
		return err
	})
	if err != nil {
		return models.Permission{}, fmt.Errorf("error creating permission: %w", err)
	}

	logger.FromContext(ctx).Info().Str("func", "*permissionService.Create").Str("permission", perm.Name).Msg("permission created")
	return perm, nil
}

func (s *permissionService) Update(ctx context.Context, permissionID int64, request models.PermissionRequest) (models.Permission, error) {
	if err := validateRequest(ctx, request); err != nil {
		return models.Permission{}, err
	}

	var perm models.Permission
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		existing, err := uow.Permissions().GetByID(ctx, permissionID)
		if err != nil {
			return err
		}

		existing.Name = request.Name
		existing.Description = request.Description
		if request.IsActive != nil {
			existing.IsActive = *request.IsActive
		}

		perm, err = uow.Permissions().Update(ctx, existing)
		return err
	})
	if err != nil {
		return models.Permission{}, fmt.Errorf("error updating permission %d: %w", permissionID, err)
	}
	return perm, nil
}

func (s *permissionService) Delete(ctx context.Context, permissionID int64) error {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		return uow.Permissions().Delete(ctx, permissionID)
	})
	if err != nil {
		return fmt.Errorf("error deleting permission %d: %w", permissionID, err)
	}
	return nil
}

// Assign grants a permission to a role. Granting it twice is not an error.
func (s *permissionService) Assign(ctx context.Context, assignment models.PermissionAssignment) error {
	if err := validateAssignment(assignment); err != nil {
		return err
	}

	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		return uow.Permissions().AssignToRole(ctx, assignment.RoleID, assignment.PermissionID)
	})
	if err != nil {
		return fmt.Errorf("error assigning permission %d to role %d: %w", assignment.PermissionID, assignment.RoleID, err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "*permissionService.Assign").
		Int64("permission_id", assignment.PermissionID).
		Int64("role_id", assignment.RoleID).
		Msg("permission granted")
	return nil
}

func (s *permissionService) Unassign(ctx context.Context, assignment models.PermissionAssignment) error {
	if err := validateAssignment(assignment); err != nil {
		return err
	}

	err := s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		return uow.Permissions().RemoveFromRole(ctx, assignment.RoleID, assignment.PermissionID)
	})
	if err != nil {
		return fmt.Errorf("error revoking permission %d from role %d: %w", assignment.PermissionID, assignment.RoleID, err)
	}
	return nil
}

func validateAssignment(assignment models.PermissionAssignment) error {
	if assignment.PermissionID <= 0 || assignment.RoleID <= 0 {
		return fmt.Errorf("%w: permission_id and role_id must be positive", ErrInvalidDataProvided)
	}
	return nil
}
