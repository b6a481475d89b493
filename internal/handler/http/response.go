// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/utils"
	"github.com/MKhiriev/go-admin-auth/models"
)

func writeData(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, models.APIResponse{Success: true, Data: data}, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeData").Msg("error writing response")
	}
}

func writePage[T any](w http.ResponseWriter, r *http.Request, page models.PagedResult[T]) {
	body := models.APIResponse{Success: true, Data: page.Items, Meta: page.Meta}
	if _, err := utils.WriteJSON(w, body, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writePage").Msg("error writing response")
	}
}

func writeMessage(w http.ResponseWriter, r *http.Request, message string) {
	writeData(w, r, models.MessageResponse{Message: message}, http.StatusOK)
}

// writeError maps err to a status code and writes the failure envelope.
// Server-side failures are logged with their cause, everything else at
// debug level.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)
	message := messageFromError(err, status)

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("uri", r.RequestURI).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	body := models.APIResponse{Success: false, Message: message, Errors: []string{message}}
	if _, werr := utils.WriteJSON(w, body, status); werr != nil {
		log.Err(werr).Str("func", "writeError").Msg("error writing response")
	}
}

// decodeJSON decodes the request body into v. With allowEmpty an absent body
// leaves v untouched.
func decodeJSON(r *http.Request, v any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	if err != nil {
		return ErrInvalidJSON
	}
	return nil
}

// writeRaw writes v without the envelope.
func writeRaw(w http.ResponseWriter, r *http.Request, v any) {
	if _, err := utils.WriteJSON(w, v, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeRaw").Msg("error writing response")
	}
}
