// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command client is a small admin CLI for a go-admin-auth server.
//
// Usage:
//
//	client [-s address] [-timeout 15s] <command> [args]
//
// Commands:
//
//	login <username> <password>   print a new token pair
//	refresh <refresh-token>       rotate a refresh token
//	revoke <refresh-token>        revoke a refresh token
//	revoke-all                    revoke every refresh token of the caller
//	me                            print the caller profile
//	permissions                   print the caller permissions
//	version                       print the server version
//
// Commands acting as the caller read the access token from -token or
// CLIENT_ACCESS_TOKEN.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/go-admin-auth/internal/adapter"
	"github.com/MKhiriev/go-admin-auth/internal/config"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

var errUsage = errors.New("usage: client [-s address] [-token access-token] <login|refresh|revoke|revoke-all|me|permissions|version> [args]")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	var override config.ClientConfig
	var accessToken string
	var showVersion bool
	fs.StringVar(&override.ServerAddress, "s", "", "Server base URL")
	fs.DurationVar(&override.RequestTimeout, "timeout", 0, "Request timeout (e.g., 15s)")
	fs.StringVar(&override.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&accessToken, "token", os.Getenv("CLIENT_ACCESS_TOKEN"), "Access token")
	fs.BoolVar(&showVersion, "v", false, "Print client build info")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showVersion {
		printBuildInfo(out)
		return nil
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	cfg, err := config.GetClientConfig(override)
	if err != nil {
		return err
	}

	log := logger.NewLogger("admin-client")
	if err = logger.SetLevel(cfg.LogLevel); err != nil {
		return err
	}

	api, err := adapter.NewHTTPServerAdapter(*cfg, log)
	if err != nil {
		return err
	}
	api.SetTokens(accessToken, "")

	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout+time.Second)
	defer cancel()

	result, err := dispatch(ctx, api, fs.Arg(0), fs.Args()[1:])
	if err != nil {
		return err
	}
	return printJSON(out, result)
}

func dispatch(ctx context.Context, api adapter.AuthServerAdapter, command string, args []string) (any, error) {
	switch command {
	case "login":
		if len(args) != 2 {
			return nil, errUsage
		}
		return api.Login(ctx, args[0], args[1])
	case "refresh":
		if len(args) != 1 {
			return nil, errUsage
		}
		return api.Refresh(ctx, args[0])
	case "revoke":
		if len(args) != 1 {
			return nil, errUsage
		}
		if err := api.Revoke(ctx, args[0]); err != nil {
			return nil, err
		}
		return map[string]bool{"revoked": true}, nil
	case "revoke-all":
		revoked, err := api.RevokeAll(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]int64{"revoked": revoked}, nil
	case "me":
		return api.Me(ctx)
	case "permissions":
		return api.MyPermissions(ctx)
	case "version":
		return api.Version(ctx)
	default:
		return nil, fmt.Errorf("unknown command %q: %w", command, errUsage)
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printBuildInfo(out io.Writer) {
	fmt.Fprint(out, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).WithDefaults())
}
