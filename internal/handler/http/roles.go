// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-admin-auth/internal/app"
	"github.com/MKhiriev/go-admin-auth/models"
)

func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.services.RoleService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, nonNil(roles), http.StatusOK)
}

func (h *Handler) getRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	role, err := h.services.RoleService.GetByID(r.Context(), roleID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, role, http.StatusOK)
}

func (h *Handler) createRole(w http.ResponseWriter, r *http.Request) {
	var request models.RoleRequest
	if err := decodeJSON(r, &request, false); err != nil {
		writeError(w, r, err)
		return
	}

	role, err := h.services.RoleService.Create(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, role, http.StatusCreated)
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request models.RoleRequest
	if err = decodeJSON(r, &request, false); err != nil {
		writeError(w, r, err)
		return
	}

	role, err := h.services.RoleService.Update(r.Context(), roleID, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, role, http.StatusOK)
}

func (h *Handler) deleteRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.RoleService.Delete(r.Context(), roleID); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, app.MsgRoleDeleted)
}

func (h *Handler) assignRoleToUser(w http.ResponseWriter, r *http.Request) {
	roleID, userID, ok := roleAndUserIDs(w, r)
	if !ok {
		return
	}

	if err := h.services.RoleService.AssignToUser(r.Context(), roleID, userID); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, app.MsgRoleAssigned)
}

func (h *Handler) removeRoleFromUser(w http.ResponseWriter, r *http.Request) {
	roleID, userID, ok := roleAndUserIDs(w, r)
	if !ok {
		return
	}

	if err := h.services.RoleService.RemoveFromUser(r.Context(), roleID, userID); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, app.MsgRoleRemoved)
}

func (h *Handler) getRolePermissions(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	perms, err := h.services.RoleService.GetPermissions(r.Context(), roleID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, nonNil(perms), http.StatusOK)
}

func roleAndUserIDs(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	roleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return 0, 0, false
	}

	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(w, r, err)
		return 0, 0, false
	}

	return roleID, userID, true
}
