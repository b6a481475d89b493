// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-admin-auth/internal/app"
	"github.com/MKhiriev/go-admin-auth/internal/service"
	"github.com/MKhiriev/go-admin-auth/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidCredentials:    http.StatusUnauthorized,
	service.ErrInvalidOrExpiredToken: http.StatusUnauthorized,
	service.ErrUnauthenticated:       http.StatusUnauthorized,
	service.ErrForbidden:             http.StatusForbidden,
	service.ErrFeatureDisabled:       http.StatusBadRequest,
	service.ErrValidation:            http.StatusBadRequest,
	service.ErrInvalidDataProvided:   http.StatusBadRequest,
	service.ErrNotFound:              http.StatusNotFound,

	store.ErrNotFound:      http.StatusNotFound,
	store.ErrAlreadyExists: http.StatusConflict,

	ErrInvalidJSON:            http.StatusBadRequest,
	ErrInvalidParameter:       http.StatusBadRequest,
	ErrMissingRefreshToken:    http.StatusBadRequest,
	ErrUnsupportedGrantType:   http.StatusBadRequest,
	ErrInvalidContentEncoding: http.StatusBadRequest,
	ErrTooManyRequests:        http.StatusTooManyRequests,
	ErrRouteNotFound:          http.StatusNotFound,
}

// unauthorizedMessages replace the wrapped error text of 401 responses so
// that no response tells which credential check failed.
var unauthorizedMessages = []error{
	service.ErrInvalidCredentials,
	service.ErrInvalidOrExpiredToken,
	service.ErrUnauthenticated,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the client-facing text for err. Internal errors
// never leak their cause.
func messageFromError(err error, status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return app.MsgInternalServerError
	case status == http.StatusUnauthorized:
		for _, target := range unauthorizedMessages {
			if errors.Is(err, target) {
				return target.Error()
			}
		}
	}
	return err.Error()
}
