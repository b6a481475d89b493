// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"dario.cat/mergo"
	"golang.org/x/crypto/bcrypt"
)

// Defaults of the seeded administrator account.
const (
	DefaultSeedAdminUsername = "admin"
	DefaultSeedAdminEmail    = "admin@example.com"
	DefaultSeedAdminFullName = "System Administrator"
)

// SeedConfig is the configuration of the seed command. It shares the
// storage and hashing variables with the server and adds the administrator
// account. There is no default password.
type SeedConfig struct {
	Storage Storage `envPrefix:"STORAGE_"`

	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"APP_BCRYPT_COST"`

	// Env: APP_LOG_LEVEL
	LogLevel string `env:"APP_LOG_LEVEL"`

	Admin SeedAdmin `envPrefix:"SEED_ADMIN_"`
}

// SeedAdmin is the administrator created by the seed command.
type SeedAdmin struct {
	// Env: SEED_ADMIN_USERNAME
	Username string `env:"USERNAME"`
	// Env: SEED_ADMIN_EMAIL
	Email string `env:"EMAIL"`
	// Env: SEED_ADMIN_FULL_NAME
	FullName string `env:"FULL_NAME"`
	// Password is never logged.
	// Env: SEED_ADMIN_PASSWORD
	Password string `env:"PASSWORD"`
}

// GetSeedConfig merges defaults with environment variables and validates
// the result.
func GetSeedConfig() (*SeedConfig, error) {
	envCfg := &SeedConfig{}
	if err := parseEnv(envCfg, serverEnvPrefix); err != nil {
		return nil, err
	}

	cfg := &SeedConfig{
		BcryptCost: DefaultBcryptCost,
		LogLevel:   DefaultLogLevel,
		Admin: SeedAdmin{
			Username: DefaultSeedAdminUsername,
			Email:    DefaultSeedAdminEmail,
			FullName: DefaultSeedAdminFullName,
		},
	}
	if err := mergo.Merge(cfg, envCfg, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging configs: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *SeedConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost must be within [%d, %d]", ErrInvalidAppConfigs, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.Admin.Password == "" {
		return fmt.Errorf("%w: SEED_ADMIN_PASSWORD is required", ErrInvalidAppConfigs)
	}
	return nil
}
