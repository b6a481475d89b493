// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-access-token-lifetime access token lifetime in minutes
//	-refresh-token-lifetime refresh token lifetime in days
//	-refresh-tokens-enabled enable or disable refresh tokens (true/false)
//	-bcrypt-cost bcrypt work factor
//	-log-level zerolog level name
//	-token-cleanup-interval period between expired refresh token sweeps
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-login-rate login requests per second per client IP
//	-login-burst login burst per client IP
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var accessTokenLifetime int
	var refreshTokenLifetime int
	var refreshTokensEnabled *bool
	var bcryptCost int
	var logLevel string
	var tokenCleanupInterval time.Duration
	var requestTimeout time.Duration
	var loginRate float64
	var loginBurst int
	var trustProxyHeaders bool

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.IntVar(&accessTokenLifetime, "access-token-lifetime", 0, "Access token lifetime in minutes")
	flag.IntVar(&refreshTokenLifetime, "refresh-token-lifetime", 0, "Refresh token lifetime in days")
	flag.Func("refresh-tokens-enabled", "Enable refresh tokens (true/false)", func(s string) error {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		refreshTokensEnabled = &v
		return nil
	})
	flag.IntVar(&bcryptCost, "bcrypt-cost", 0, "Bcrypt work factor")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.DurationVar(&tokenCleanupInterval, "token-cleanup-interval", 0, "Expired refresh token sweep period (e.g., 1h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.Float64Var(&loginRate, "login-rate", 0, "Login requests per second per client IP")
	flag.IntVar(&loginBurst, "login-burst", 0, "Login burst per client IP")
	flag.BoolVar(&trustProxyHeaders, "trust-proxy-headers", false, "Take the client IP from proxy headers")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:               tokenSignKey,
			TokenIssuer:                tokenIssuer,
			AccessTokenLifetimeMinutes: accessTokenLifetime,
			RefreshTokensEnabled:       refreshTokensEnabled,
			RefreshTokenLifetimeDays:   refreshTokenLifetime,
			BcryptCost:                 bcryptCost,
			LogLevel:                   logLevel,
			TokenCleanupInterval:       tokenCleanupInterval,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:        serverAddress.String(),
			RequestTimeout:     requestTimeout,
			LoginRatePerSecond: loginRate,
			LoginRateBurst:     loginBurst,
			TrustProxyHeaders:  trustProxyHeaders,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be within [1, 65535]")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
