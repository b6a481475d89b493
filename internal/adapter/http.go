// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-admin-auth/internal/config"
	"github.com/MKhiriev/go-admin-auth/internal/logger"
	"github.com/MKhiriev/go-admin-auth/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *resty.Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string

	logger *logger.Logger
}

// NewHTTPServerAdapter builds the REST implementation of
// [AuthServerAdapter] for cfg.ServerAddress. An address without a scheme is
// taken as http.
func NewHTTPServerAdapter(cfg config.ClientConfig, logger *logger.Logger) (AuthServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetTokens(accessToken, refreshToken string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.accessToken = strings.TrimSpace(accessToken)
	h.refreshToken = strings.TrimSpace(refreshToken)
}

func (h *httpServerAdapter) Tokens() (string, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.accessToken, h.refreshToken
}

func (h *httpServerAdapter) Login(ctx context.Context, username, password string) (models.TokenPair, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{Username: username, Password: password}).
		Post("/api/auth/login")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("login request: %w", err)
	}

	pair, err := decodeData[models.TokenPair](resp)
	if err != nil {
		return models.TokenPair{}, err
	}

	h.SetTokens(pair.AccessToken, pair.RefreshToken)
	h.logger.Debug().Str("username", username).Msg("logged in")
	return pair, nil
}

func (h *httpServerAdapter) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	token, err := h.refreshTokenOrHeld(refreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RefreshRequest{RefreshToken: token}).
		Post("/api/auth/refresh")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("refresh request: %w", err)
	}

	pair, err := decodeData[models.TokenPair](resp)
	if err != nil {
		return models.TokenPair{}, err
	}

	h.SetTokens(pair.AccessToken, pair.RefreshToken)
	return pair, nil
}

func (h *httpServerAdapter) Revoke(ctx context.Context, refreshToken string) error {
	token, err := h.refreshTokenOrHeld(refreshToken)
	if err != nil {
		return err
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RefreshRequest{RefreshToken: token}).
		Post("/api/auth/revoke")
	if err != nil {
		return fmt.Errorf("revoke request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if access, held := h.Tokens(); held == token {
		h.SetTokens(access, "")
	}
	return nil
}

func (h *httpServerAdapter) RevokeAll(ctx context.Context) (int64, error) {
	resp, err := h.authedRequest(ctx).Post("/api/auth/revoke-all")
	if err != nil {
		return 0, fmt.Errorf("revoke-all request: %w", err)
	}

	revoked, err := decodeData[models.RevokedResponse](resp)
	if err != nil {
		return 0, err
	}

	access, _ := h.Tokens()
	h.SetTokens(access, "")
	return revoked.Revoked, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.UserDTO, error) {
	resp, err := h.authedRequest(ctx).Get("/api/users/me")
	if err != nil {
		return models.UserDTO{}, fmt.Errorf("me request: %w", err)
	}
	return decodeData[models.UserDTO](resp)
}

func (h *httpServerAdapter) MyPermissions(ctx context.Context) ([]string, error) {
	resp, err := h.authedRequest(ctx).Get("/api/users/me/permissions")
	if err != nil {
		return nil, fmt.Errorf("permissions request: %w", err)
	}
	return decodeData[[]string](resp)
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.VersionInfo, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return models.VersionInfo{}, fmt.Errorf("version request: %w", err)
	}
	return decodeData[models.VersionInfo](resp)
}

func (h *httpServerAdapter) refreshTokenOrHeld(refreshToken string) (string, error) {
	if token := strings.TrimSpace(refreshToken); token != "" {
		return token, nil
	}
	if _, held := h.Tokens(); held != "" {
		return held, nil
	}
	return "", ErrNoRefreshToken
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if access, _ := h.Tokens(); access != "" {
		req.SetAuthToken(access)
	}
	return req
}

// decodeData checks the status and unwraps the data field of the envelope.
func decodeData[T any](resp *resty.Response) (T, error) {
	var zero T
	if err := mapHTTPError(resp); err != nil {
		return zero, err
	}

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return zero, fmt.Errorf("decode response: %w", err)
	}
	if !envelope.Success {
		return zero, fmt.Errorf("decode response: %s", serverMessage(resp.Body()))
	}

	var out T
	if err := json.Unmarshal(envelope.Data, &out); err != nil {
		return zero, fmt.Errorf("decode response data: %w", err)
	}
	return out, nil
}
