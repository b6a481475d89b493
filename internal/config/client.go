// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"dario.cat/mergo"
)

// Client defaults.
const (
	DefaultClientServerAddress  = "http://localhost:8080"
	DefaultClientRequestTimeout = 15 * time.Second
)

// ClientConfig configures the admin command-line client.
type ClientConfig struct {
	// ServerAddress is the base URL of the auth service.
	// Env: CLIENT_SERVER_ADDRESS
	ServerAddress string `env:"SERVER_ADDRESS"`

	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Env: CLIENT_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// GetClientConfig merges defaults, environment variables and override, in
// that order. Zero fields of override are ignored.
func GetClientConfig(override ClientConfig) (*ClientConfig, error) {
	envCfg := &ClientConfig{}
	if err := parseEnv(envCfg, clientEnvPrefix); err != nil {
		return nil, err
	}

	cfg := &ClientConfig{
		ServerAddress:  DefaultClientServerAddress,
		RequestTimeout: DefaultClientRequestTimeout,
		LogLevel:       "warn",
	}
	for _, src := range []*ClientConfig{envCfg, &override} {
		if err := mergo.Merge(cfg, src, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("%w: request timeout must be positive", ErrInvalidServerConfigs)
	}
	return cfg, nil
}
