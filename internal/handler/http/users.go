// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-admin-auth/internal/app"
	"github.com/MKhiriev/go-admin-auth/models"
)

func (h *Handler) searchUsers(w http.ResponseWriter, r *http.Request) {
	query, err := parseUserSearchQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.services.UserService.Search(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writePage(w, r, page)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, user, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var request models.UserCreateRequest
	if err := decodeJSON(r, &request, false); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Create(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, user, http.StatusCreated)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request models.UserUpdateRequest
	if err = decodeJSON(r, &request, false); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Update(r.Context(), userID, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, user, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.Delete(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, app.MsgUserDeleted)
}

// ── self-service ──────────────────────────────────────────────────────────────

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	user, err := h.services.UserService.GetByID(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, user, http.StatusOK)
}

func (h *Handler) getMyRoles(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	roles, err := h.services.UserService.GetOwnRoles(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, nonNil(roles), http.StatusOK)
}

func (h *Handler) getMyPermissions(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	perms, err := h.services.UserService.GetOwnPermissions(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, nonNil(perms), http.StatusOK)
}

func (h *Handler) updateMyRoles(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	var request models.UpdateRolesRequest
	if err := decodeJSON(r, &request, false); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateOwnRoles(r.Context(), principal.UserID, request.Roles)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, user, http.StatusOK)
}

func (h *Handler) changeMyPassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	var request models.ChangePasswordRequest
	if err := decodeJSON(r, &request, false); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.UserService.ChangePassword(r.Context(), principal.UserID, request); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, app.MsgPasswordChanged)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
