// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/service"
)

type tokenCleanupWorker struct {
	cleaner  service.TokenCleaner
	interval time.Duration
	logger   *logger.Logger
}

// NewTokenCleanupWorker returns a worker that purges expired refresh tokens
// once on start and then every interval.
func NewTokenCleanupWorker(cleaner service.TokenCleaner, interval time.Duration, logger *logger.Logger) Worker {
	return &tokenCleanupWorker{
		cleaner:  cleaner,
		interval: interval,
		logger:   logger.GetChildLogger(),
	}
}

func (w *tokenCleanupWorker) Run(ctx context.Context) {
	log := w.logger.With().Str("worker", "token-cleanup").Logger()
	log.Info().Dur("interval", w.interval).Msg("worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.cleaner.PurgeExpired(ctx); err != nil && ctx.Err() == nil {
			log.Err(err).Msg("token cleanup failed")
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("worker stopped")
			return
		case <-ticker.C:
		}
	}
}
