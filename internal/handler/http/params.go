// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-admin-auth/models"
	"github.com/go-chi/chi/v5"
)

var userSortFields = []string{"id", "username", "email", "created_at"}

// pathID parses a positive int64 URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidParameter, name)
	}
	return id, nil
}

// parseUserSearchQuery reads page, pageSize, sortBy, sortDir, search and
// isActive. Absent values are left zero for the service to default.
func parseUserSearchQuery(r *http.Request) (models.UserSearchQuery, error) {
	values := r.URL.Query()
	query := models.UserSearchQuery{
		Search: strings.TrimSpace(values.Get("search")),
		SortBy: values.Get("sortBy"),
	}

	var err error
	if query.Page, err = optionalInt(values.Get("page"), "page"); err != nil {
		return models.UserSearchQuery{}, err
	}
	if query.PageSize, err = optionalInt(values.Get("pageSize"), "pageSize"); err != nil {
		return models.UserSearchQuery{}, err
	}

	if query.SortBy != "" && !slices.Contains(userSortFields, query.SortBy) {
		return models.UserSearchQuery{}, fmt.Errorf("%w: sortBy must be one of %s", ErrInvalidParameter, strings.Join(userSortFields, ", "))
	}

	switch strings.ToLower(values.Get("sortDir")) {
	case "", "asc":
	case "desc":
		query.SortDesc = true
	default:
		return models.UserSearchQuery{}, fmt.Errorf("%w: sortDir must be asc or desc", ErrInvalidParameter)
	}

	if raw := values.Get("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return models.UserSearchQuery{}, fmt.Errorf("%w: isActive must be a boolean", ErrInvalidParameter)
		}
		query.IsActive = &active
	}

	return query, nil
}

func optionalInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidParameter, name)
	}
	return v, nil
}
