// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/store"
)

type tokenCleaner struct {
	transactor store.Transactor
	now        func() time.Time
	logger     *logger.Logger
}

func NewTokenCleaner(transactor store.Transactor, logger *logger.Logger) TokenCleaner {
	return &tokenCleaner{transactor: transactor, now: time.Now, logger: logger}
}

// PurgeExpired drops expired rows only. Revoked tokens that have not expired
// yet are kept so that replaying them is still recognized.
func (c *tokenCleaner) PurgeExpired(ctx context.Context) (int64, error) {
	var removed int64
	err := c.transactor.WithinTx(ctx, func(ctx context.Context, uow store.UnitOfWork) error {
		var err error
		removed, err = uow.RefreshTokens().DeleteExpired(ctx, c.now())
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("error purging expired refresh tokens: %w", err)
	}

	if removed > 0 {
		c.logger.Info().Str("func", "*tokenCleaner.PurgeExpired").Int64("removed", removed).Msg("expired refresh tokens purged")
	}
	return removed, nil
}
