// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-admin-auth/internal/app"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/internal/metrics"
	"github.com/MKhiriev/go-admin-auth/internal/service"
	"github.com/MKhiriev/go-admin-auth/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var request models.LoginRequest
	if err := decodeJSON(r, &request, false); err != nil {
		writeError(w, r, err)
		return
	}

	pair, ok := h.issue(w, r, request.Username, request.Password)
	if !ok {
		return
	}

	writeData(w, r, pair, http.StatusOK)
}

// token is the OAuth2 password grant. It answers with the bare
// {access_token, token_type} body OAuth2 clients expect.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, fmt.Errorf("%w: malformed form body", ErrInvalidParameter))
		return
	}

	if grantType := r.PostForm.Get("grant_type"); grantType != "" && grantType != "password" {
		writeError(w, r, ErrUnsupportedGrantType)
		return
	}

	pair, ok := h.issue(w, r, r.PostForm.Get("username"), r.PostForm.Get("password"))
	if !ok {
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeRaw(w, r, models.OAuth2TokenResponse{AccessToken: pair.AccessToken, TokenType: pair.TokenType})
}

// issue runs the login and writes the failure response itself.
func (h *Handler) issue(w http.ResponseWriter, r *http.Request, username, password string) (models.TokenPair, bool) {
	if strings.TrimSpace(username) == "" || password == "" {
		writeError(w, r, fmt.Errorf("%w: username and password are required", service.ErrValidation))
		return models.TokenPair{}, false
	}

	pair, err := h.services.AuthService.Login(r.Context(), username, password)
	if err != nil {
		h.metrics.AuthEvent(metrics.EventLogin, outcomeOf(err))
		writeError(w, r, err)
		return models.TokenPair{}, false
	}

	h.metrics.AuthEvent(metrics.EventLogin, metrics.OutcomeSuccess)
	return pair, true
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	token, err := refreshTokenFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.services.AuthService.Refresh(r.Context(), token)
	if err != nil {
		h.metrics.AuthEvent(metrics.EventRefresh, outcomeOf(err))
		writeError(w, r, err)
		return
	}

	h.metrics.AuthEvent(metrics.EventRefresh, metrics.OutcomeSuccess)
	writeData(w, r, pair, http.StatusOK)
}

// revoke always reports success for a well-formed request, whether or not
// the token existed.
func (h *Handler) revoke(w http.ResponseWriter, r *http.Request) {
	token, err := refreshTokenFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.AuthService.RevokeRefreshToken(r.Context(), token); err != nil {
		h.metrics.AuthEvent(metrics.EventRevoke, metrics.OutcomeError)
		writeError(w, r, err)
		return
	}

	h.metrics.AuthEvent(metrics.EventRevoke, metrics.OutcomeSuccess)
	writeMessage(w, r, app.MsgRefreshTokenRevoked)
}

func (h *Handler) revokeAll(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	revoked, err := h.services.AuthService.RevokeAllForUser(r.Context(), principal.UserID)
	if err != nil {
		h.metrics.AuthEvent(metrics.EventRevokeAll, metrics.OutcomeError)
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("revoked", revoked).Msg("refresh tokens revoked by owner")
	h.metrics.AuthEvent(metrics.EventRevokeAll, metrics.OutcomeSuccess)
	writeData(w, r, models.RevokedResponse{Revoked: revoked}, http.StatusOK)
}

// refreshTokenFromRequest takes the token from a JSON body and falls back to
// the refreshToken query parameter.
func refreshTokenFromRequest(r *http.Request) (string, error) {
	var request models.RefreshRequest
	if err := decodeJSON(r, &request, true); err != nil {
		return "", err
	}

	token := strings.TrimSpace(request.RefreshToken)
	if token == "" {
		token = strings.TrimSpace(r.URL.Query().Get("refreshToken"))
	}
	if token == "" {
		return "", ErrMissingRefreshToken
	}
	return token, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidOrExpiredToken),
		errors.Is(err, service.ErrFeatureDisabled):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
