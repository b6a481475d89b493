// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-admin-auth/internal/config"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
)

// Storages bundles the connection pool with the transactor built on it.
type Storages struct {
	DB         *DB
	Transactor Transactor
}

// NewStorages connects to PostgreSQL, applies pending migrations and wires
// the transactor.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		DB:         db,
		Transactor: NewTransactor(db),
	}, nil
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	return s.DB.Close()
}
