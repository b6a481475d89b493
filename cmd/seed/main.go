// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command seed provisions the default roles, permissions and the admin
// account. It is safe to run repeatedly.
//
// Configuration comes from the environment: STORAGE_DB_DATABASE_URI,
// SEED_ADMIN_PASSWORD (required), SEED_ADMIN_USERNAME, SEED_ADMIN_EMAIL,
// SEED_ADMIN_FULL_NAME, APP_BCRYPT_COST and APP_LOG_LEVEL.
package main

import (
	"context"
	"time"

	"github.com/MKhiriev/go-admin-auth/internal/config"
	"github.com/MKhiriev/go-admin-auth/internal/crypto"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/service"
	"github.com/MKhiriev/go-admin-auth/internal/store"
	"github.com/MKhiriev/go-admin-auth/models"
)

func main() {
	log := logger.NewLogger("seed")

	cfg, err := config.GetSeedConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	seeder := service.NewSeeder(storages.Transactor, crypto.NewBcryptHasher(cfg.BcryptCost), log)
	report, err := seeder.Seed(ctx, models.SeedAdmin{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		FullName: cfg.Admin.FullName,
		Password: cfg.Admin.Password,
	})
	if err != nil {
		_ = storages.Close()
		log.Fatal().Err(err).Msg("seeding failed")
	}

	log.Info().Any("report", report).Str("admin", cfg.Admin.Username).Msg("seed complete")
}
