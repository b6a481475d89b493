// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.App.TokenSignKey = "secret"
	cfg.Storage.DB.DSN = "postgres://localhost/db"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "missing sign key", mutate: func(c *StructuredConfig) { c.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "missing issuer", mutate: func(c *StructuredConfig) { c.App.TokenIssuer = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "zero access lifetime", mutate: func(c *StructuredConfig) { c.App.AccessTokenLifetimeMinutes = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "zero refresh lifetime", mutate: func(c *StructuredConfig) { c.App.RefreshTokenLifetimeDays = 0 }, wantErr: ErrInvalidAppConfigs},
		{
			name: "zero refresh lifetime is fine when refresh disabled",
			mutate: func(c *StructuredConfig) {
				c.App.RefreshTokenLifetimeDays = 0
				c.App.RefreshTokensEnabled = boolPtr(false)
			},
		},
		{name: "bcrypt cost too low", mutate: func(c *StructuredConfig) { c.App.BcryptCost = 1 }, wantErr: ErrInvalidAppConfigs},
		{name: "bcrypt cost too high", mutate: func(c *StructuredConfig) { c.App.BcryptCost = 40 }, wantErr: ErrInvalidAppConfigs},
		{name: "unknown log level", mutate: func(c *StructuredConfig) { c.App.LogLevel = "loud" }, wantErr: ErrInvalidAppConfigs},
		{name: "zero cleanup interval", mutate: func(c *StructuredConfig) { c.App.TokenCleanupInterval = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "missing dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "missing address", mutate: func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
		{name: "negative timeout", mutate: func(c *StructuredConfig) { c.Server.RequestTimeout = -1 }, wantErr: ErrInvalidServerConfigs},
		{name: "negative rate", mutate: func(c *StructuredConfig) { c.Server.LoginRatePerSecond = -1 }, wantErr: ErrInvalidServerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
