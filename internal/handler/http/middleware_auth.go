// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/metrics"
	"github.com/MKhiriev/go-admin-auth/internal/service"
	"github.com/MKhiriev/go-admin-auth/internal/utils"
	"github.com/MKhiriev/go-admin-auth/models"
)

// authenticate resolves the bearer token of the request into a
// [models.Principal] and stores it in the request context. Any failure
// answers 401 with a WWW-Authenticate challenge.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			h.metrics.AuthEvent(metrics.EventGuard, metrics.OutcomeRejected)
			writeError(w, r, service.ErrUnauthenticated)
			return
		}

		principal, err := h.services.Guard.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				h.metrics.AuthEvent(metrics.EventGuard, metrics.OutcomeRejected)
			} else {
				h.metrics.AuthEvent(metrics.EventGuard, metrics.OutcomeError)
			}
			writeError(w, r, err)
			return
		}

		ctx := logger.WithUser(r.Context(), principal.UserID, principal.Username)
		next.ServeHTTP(w, r.WithContext(utils.WithPrincipal(ctx, principal)))
	})
}

// requireRoles passes when the caller holds any of roles.
func (h *Handler) requireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := principalFromRequest(w, r)
			if !ok {
				return
			}

			if err := h.services.Guard.RequireRoles(principal, roles...); err != nil {
				h.metrics.AuthEvent(metrics.EventGuard, metrics.OutcomeForbidden)
				writeError(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// requirePermissions passes when the caller holds every one of permissions.
// The resolved permissions replace the principal in the request context.
func (h *Handler) requirePermissions(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := principalFromRequest(w, r)
			if !ok {
				return
			}

			principal, err := h.services.Guard.RequirePermissions(r.Context(), principal, true, permissions...)
			if err != nil {
				if errors.Is(err, service.ErrForbidden) {
					h.metrics.AuthEvent(metrics.EventGuard, metrics.OutcomeForbidden)
				}
				writeError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithPrincipal(r.Context(), principal)))
		})
	}
}

// principalFromRequest returns the authenticated caller. When the route is
// not behind authenticate it answers 401 itself and reports false.
func principalFromRequest(w http.ResponseWriter, r *http.Request) (models.Principal, bool) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return models.Principal{}, false
	}
	return principal, true
}
