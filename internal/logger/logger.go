// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger for the go-admin-auth binaries.
//
// Request-scoped loggers travel in the context: the trace-id middleware
// attaches one, WithUser enriches it once the caller is known, and
// FromContext or FromRequest read it back. Entries identify callers by user
// id and username only; passwords and tokens are never passed to a logger.
package logger

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger, so the whole zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns a JSON stdout logger tagged with role ("go-admin-auth",
// "seed", "client"). Every entry carries a timestamp and a "func" field
// holding the calling function name. The global level is reset to debug;
// narrow it with [SetLevel] once the configuration is loaded.
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name() // return function name
	}

	zerolog.CallerFieldName = "func"
	logger := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// SetLevel parses a zerolog level name (e.g. "info", "warn") and applies it
// globally. An empty name leaves the current level untouched.
func SetLevel(name string) error {
	if name == "" {
		return nil
	}

	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}

	zerolog.SetGlobalLevel(level)
	return nil
}

// Nop returns a *Logger that discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy of l that can be enriched independently.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext returns the logger attached to ctx. Without one it falls back
// to zerolog's default context logger and never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// WithUser returns a copy of ctx whose logger also carries the caller's
// user_id and username.
func WithUser(ctx context.Context, userID int64, username string) context.Context {
	return log.Ctx(ctx).With().
		Int64("user_id", userID).
		Str("username", username).
		Logger().
		WithContext(ctx)
}
