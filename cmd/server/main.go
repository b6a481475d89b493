// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-admin-auth/internal/config"
	"github.com/MKhiriev/go-admin-auth/internal/handler"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/metrics"
	"github.com/MKhiriev/go-admin-auth/internal/server"
	"github.com/MKhiriev/go-admin-auth/internal/service"
	"github.com/MKhiriev/go-admin-auth/internal/store"
	"github.com/MKhiriev/go-admin-auth/internal/workers"
	"github.com/MKhiriev/go-admin-auth/models"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).WithDefaults()
	fmt.Print(buildInfo)

	log := logger.NewLogger("go-admin-auth")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("token_issuer", cfg.App.TokenIssuer).
		Bool("refresh_tokens_enabled", cfg.App.RefreshEnabled()).
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages.Transactor, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	m, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		log.Fatal().Err(err).Msg("error registering metrics")
	}

	handlers, err := handler.NewHandlers(services, m, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workersCtx, stopWorkers := context.WithCancel(context.Background())
	bg := workers.NewWorkers(
		workers.NewTokenCleanupWorker(services.TokenCleaner, cfg.App.TokenCleanupInterval, log),
	)
	bg.Start(workersCtx)

	srv.RunServer()

	stopWorkers()
	bg.Wait()
}
