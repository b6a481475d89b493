// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-admin-auth/internal/app"
	"github.com/MKhiriev/go-admin-auth/models"
)

func (h *Handler) listPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.services.PermissionService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, nonNil(perms), http.StatusOK)
}

func (h *Handler) getPermission(w http.ResponseWriter, r *http.Request) {
	permissionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	perm, err := h.services.PermissionService.GetByID(r.Context(), permissionID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, perm, http.StatusOK)
}

func (h *Handler) createPermission(w http.ResponseWriter, r *http.Request) {
	var request models.PermissionRequest
	if err := decodeJSON(r, &request, false); err != nil {
		writeError(w, r, err)
		return
	}

	perm, err := h.services.PermissionService.Create(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, perm, http.StatusCreated)
}

func (h *Handler) updatePermission(w http.ResponseWriter, r *http.Request) {
	permissionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request models.PermissionRequest
	if err = decodeJSON(r, &request, false); err != nil {
		writeError(w, r, err)
		return
	}

	perm, err := h.services.PermissionService.Update(r.Context(), permissionID, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, perm, http.StatusOK)
}

func (h *Handler) deletePermission(w http.ResponseWriter, r *http.Request) {
	permissionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.PermissionService.Delete(r.Context(), permissionID); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, app.MsgPermissionDeleted)
}

func (h *Handler) assignPermission(w http.ResponseWriter, r *http.Request) {
	var assignment models.PermissionAssignment
	if err := decodeJSON(r, &assignment, false); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.PermissionService.Assign(r.Context(), assignment); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, app.MsgPermissionAssigned)
}

func (h *Handler) unassignPermission(w http.ResponseWriter, r *http.Request) {
	var assignment models.PermissionAssignment
	if err := decodeJSON(r, &assignment, false); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.PermissionService.Unassign(r.Context(), assignment); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, app.MsgPermissionUnassigned)
}
