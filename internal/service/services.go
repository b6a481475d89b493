// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-admin-auth/internal/config"
	"github.com/MKhiriev/go-admin-auth/internal/crypto"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/store"
	"github.com/MKhiriev/go-admin-auth/internal/utils"
	"github.com/MKhiriev/go-admin-auth/models"
)

type Services struct {
	AuthService       AuthService
	Guard             Guard
	UserService       UserService
	RoleService       RoleService
	PermissionService PermissionService
	AppInfoService    AppInfoService
	TokenCleaner      TokenCleaner
}

// NewServices wires every service on top of one transactor. The password
// hasher and the token codec are shared.
func NewServices(transactor store.Transactor, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	hasher := crypto.NewBcryptHasher(cfg.App.BcryptCost)

	codec, err := utils.NewJWTCodec(cfg.App.TokenSignKey, cfg.App.TokenIssuer, cfg.App.AccessTokenLifetime())
	if err != nil {
		return nil, fmt.Errorf("error creating token codec: %w", err)
	}

	authService, err := NewAuthService(transactor, hasher, codec, crypto.NewTokenGenerator(), cfg.App, logger)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:       authService,
		Guard:             NewGuard(transactor, codec, logger),
		UserService:       NewUserService(transactor, hasher, logger),
		RoleService:       NewRoleService(transactor, logger),
		PermissionService: NewPermissionService(transactor, logger),
		AppInfoService:    appInfoService,
		TokenCleaner:      NewTokenCleaner(transactor, logger),
	}, nil
}
