// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-admin-auth/internal/crypto"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/store"
	"github.com/MKhiriev/go-admin-auth/models"
)

type seeder struct {
	transactor store.Transactor
	hasher     crypto.PasswordHasher
	logger     *logger.Logger
}

func NewSeeder(transactor store.Transactor, hasher crypto.PasswordHasher, logger *logger.Logger) Seeder {
	return &seeder{transactor: transactor, hasher: hasher, logger: logger}
}

// Seed creates the default roles and permissions, grants every permission to
// SuperAdmin and Admin, and creates the administrator holding SuperAdmin.
// Everything runs in one transaction.
func (s *seeder) Seed(ctx context.Context, admin models.SeedAdmin) (models.SeedReport, error) {
	if err := validateRequest(ctx, admin); err != nil {
		return models.SeedReport{}, err
	}

	// hashed up front so bcrypt does not run inside the transaction
	passwordHash, err := s.hasher.Hash(admin.Password)
	if err != nil {
		return models.SeedReport{}, fmt.Errorf("error hashing admin password: %w", err)
	}

	var report models.SeedReport
	err = s.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		report = models.SeedReport{}

		roles := make(map[string]models.Role)
		for _, name := range models.DefaultRoles() {
			role, created, err := ensureRole(ctx, uow, name)
			if err != nil {
				return err
			}
			if created {
				report.RolesCreated++
			}
			roles[name] = role
		}

		permissions, created, err := ensurePermissions(ctx, uow, models.DefaultPermissions())
		if err != nil {
			return err
		}
		report.PermissionsCreated = created

		for _, roleName := range []string{models.RoleSuperAdmin, models.RoleAdmin} {
			for _, p := range permissions {
				if err = uow.Permissions().AssignToRole(ctx, roles[roleName].RoleID, p.PermissionID); err != nil {
					return fmt.Errorf("error granting %s to %s: %w", p.Name, roleName, err)
				}
			}
		}

		user, err := uow.Users().GetByUsername(ctx, admin.Username)
		switch {
		case errors.Is(err, store.ErrNotFound):
			user, err = uow.Users().Create(ctx, models.User{
				Username:     admin.Username,
				Email:        admin.Email,
				FullName:     admin.FullName,
				IsActive:     true,
				PasswordHash: passwordHash,
			})
			if err != nil {
				return fmt.Errorf("error creating admin user: %w", err)
			}
			report.AdminCreated = true
		case err != nil:
			return fmt.Errorf("error looking up admin user: %w", err)
		}
		report.AdminID = user.UserID

		return uow.Roles().AssignToUser(ctx, user.UserID, roles[models.RoleSuperAdmin].RoleID)
	})
	if err != nil {
		return models.SeedReport{}, fmt.Errorf("error seeding defaults: %w", err)
	}

	s.logger.Info().
		Str("func", "*seeder.Seed").
		Int("roles_created", report.RolesCreated).
		Int("permissions_created", report.PermissionsCreated).
		Bool("admin_created", report.AdminCreated).
		Int64("admin_id", report.AdminID).
		Msg("defaults seeded")

	return report, nil
}

func ensureRole(ctx context.Context, uow store.UnitOfWork, name string) (models.Role, bool, error) {
	role, err := uow.Roles().GetByName(ctx, name)
	if err == nil {
		return role, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.Role{}, false, fmt.Errorf("error looking up role %s: %w", name, err)
	}

	role, err = uow.Roles().Create(ctx, models.Role{Name: name, Description: name + " role", IsActive: true})
	if err != nil {
		return models.Role{}, false, fmt.Errorf("error creating role %s: %w", name, err)
	}
	return role, true, nil
}

// ensurePermissions returns the named permissions in the given order,
// creating the missing ones.
func ensurePermissions(ctx context.Context, uow store.UnitOfWork, names []string) ([]models.Permission, int, error) {
	existing, err := uow.Permissions().GetByNames(ctx, names)
	if err != nil {
		return nil, 0, fmt.Errorf("error looking up permissions: %w", err)
	}

	byName := make(map[string]models.Permission, len(existing))
	for _, p := range existing {
		byName[p.Name] = p
	}

	created := 0
	result := make([]models.Permission, 0, len(names))
	for _, name := range names {
		p, ok := byName[name]
		if !ok {
			p, err = uow.Permissions().Create(ctx, models.Permission{Name: name, Description: name + " permission", IsActive: true})
			if err != nil {
				return nil, 0, fmt.Errorf("error creating permission %s: %w", name, err)
			}
			created++
		}
		result = append(result, p)
	}
	return result, created, nil
}
