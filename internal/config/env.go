// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Environment prefixes of the binaries that share this package.
const (
	serverEnvPrefix = ""
	clientEnvPrefix = "CLIENT_"
)

// parseEnv populates cfg from environment variables using caarlos0/env.
// prefix is prepended to every `env` and `envPrefix` tag of cfg.
func parseEnv(cfg any, prefix string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
