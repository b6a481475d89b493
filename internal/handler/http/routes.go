// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-admin-auth/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) { writeError(w, r, ErrRouteNotFound) })
	router.MethodNotAllowed(CheckHTTPMethod())

	router.Use(middleware.Recoverer)
	if h.cfg.TrustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.metrics.Instrument)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	router.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	router.Group(func(router chi.Router) {
		router.Use(withGZip)
		h.apiRoutes(router)
	})

	return router
}

func (h *Handler) apiRoutes(router chi.Router) {
	router.Get("/api/version", h.getVersion)

	router.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.rateLimit)
			r.Post("/login", h.login)
			r.Post("/token", h.token)
			r.Post("/refresh", h.refresh)
		})
		r.Post("/revoke", h.revoke)
		r.With(h.authenticate).Post("/revoke-all", h.revokeAll)
	})

	router.Route("/api/users", func(r chi.Router) {
		r.Use(h.authenticate)

		r.Route("/me", func(r chi.Router) {
			r.Get("/", h.getMe)
			r.Get("/roles", h.getMyRoles)
			r.Get("/permissions", h.getMyPermissions)
			r.With(h.requirePermissions(models.PermissionUsersSelfManageRoles)).Put("/roles", h.updateMyRoles)
			r.Put("/password", h.changeMyPassword)
		})

		read := h.requirePermissions(models.PermissionUsersRead)
		write := h.requirePermissions(models.PermissionUsersWrite)

		r.With(read).Get("/", h.searchUsers)
		r.With(write).Post("/", h.createUser)
		r.With(read).Get("/{id}", h.getUser)
		r.With(write).Put("/{id}", h.updateUser)
		r.With(write).Delete("/{id}", h.deleteUser)
	})

	router.Route("/api/roles", func(r chi.Router) {
		r.Use(h.authenticate, h.requireRoles(models.RoleAdmin, models.RoleSuperAdmin))

		r.Get("/", h.listRoles)
		r.Post("/", h.createRole)
		r.Get("/{id}", h.getRole)
		r.Put("/{id}", h.updateRole)
		r.Delete("/{id}", h.deleteRole)
		r.Get("/{id}/permissions", h.getRolePermissions)
		r.Post("/{id}/users/{userID}", h.assignRoleToUser)
		r.Delete("/{id}/users/{userID}", h.removeRoleFromUser)
	})

	router.Route("/api/permissions", func(r chi.Router) {
		r.Use(h.authenticate, h.requireRoles(models.RoleAdmin, models.RoleSuperAdmin))

		r.Get("/", h.listPermissions)
		r.Post("/", h.createPermission)
		r.Post("/assign", h.assignPermission)
		r.Delete("/unassign", h.unassignPermission)
		r.Get("/{id}", h.getPermission)
		r.Put("/{id}", h.updatePermission)
		r.Delete("/{id}", h.deletePermission)
	})
}
