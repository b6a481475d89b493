// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey               string   `json:"token_sign_key"`
		TokenIssuer                string   `json:"token_issuer"`
		AccessTokenLifetimeMinutes int      `json:"access_token_lifetime_minutes"`
		RefreshTokensEnabled       *bool    `json:"refresh_tokens_enabled,omitempty"`
		RefreshTokenLifetimeDays   int      `json:"refresh_token_lifetime_days"`
		BcryptCost                 int      `json:"bcrypt_cost"`
		LogLevel                   string   `json:"log_level"`
		TokenCleanupInterval       Duration `json:"token_cleanup_interval"`
		Version                    string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress        string   `json:"http_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		LoginRatePerSecond float64  `json:"login_rate_per_second"`
		LoginRateBurst     int      `json:"login_rate_burst"`
		TrustProxyHeaders  bool     `json:"trust_proxy_headers"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:               jsonCfg.App.TokenSignKey,
			TokenIssuer:                jsonCfg.App.TokenIssuer,
			AccessTokenLifetimeMinutes: jsonCfg.App.AccessTokenLifetimeMinutes,
			RefreshTokensEnabled:       jsonCfg.App.RefreshTokensEnabled,
			RefreshTokenLifetimeDays:   jsonCfg.App.RefreshTokenLifetimeDays,
			BcryptCost:                 jsonCfg.App.BcryptCost,
			LogLevel:                   jsonCfg.App.LogLevel,
			TokenCleanupInterval:       time.Duration(jsonCfg.App.TokenCleanupInterval),
			Version:                    jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:        jsonCfg.Server.HTTPAddress,
			RequestTimeout:     time.Duration(jsonCfg.Server.RequestTimeout),
			LoginRatePerSecond: jsonCfg.Server.LoginRatePerSecond,
			LoginRateBurst:     jsonCfg.Server.LoginRateBurst,
			TrustProxyHeaders:  jsonCfg.Server.TrustProxyHeaders,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
