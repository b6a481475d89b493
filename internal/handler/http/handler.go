// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-admin-auth/internal/config"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/metrics"
	"github.com/MKhiriev/go-admin-auth/internal/service"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics
	limiter  *ipRateLimiter
	cfg      config.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  m,
		limiter:  newIPRateLimiter(cfg.LoginRatePerSecond, cfg.LoginRateBurst),
		cfg:      cfg,
		logger:   logger,
	}
}
