// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// APIResponse is the envelope of every JSON response body.
type APIResponse struct {
	Success bool     `json:"success"`
	Data    any      `json:"data"`
	Meta    any      `json:"meta,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// PageMeta describes the position of a page inside a listing.
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// PagedResult is one page of items plus its metadata.
type PagedResult[T any] struct {
	Items []T
	Meta  PageMeta
}

// NewPagedResult fills in the page metadata for items.
func NewPagedResult[T any](items []T, total int64, page, pageSize int) PagedResult[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}

	return PagedResult[T]{
		Items: items,
		Meta: PageMeta{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}
}

// MessageResponse is a bare acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// RevokedResponse reports how many refresh tokens a bulk revoke changed.
type RevokedResponse struct {
	Revoked int64 `json:"revoked"`
}

// OAuth2TokenResponse is the bare body of the password-grant token endpoint.
type OAuth2TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// VersionInfo is returned by GET /api/version.
type VersionInfo struct {
	Version     string `json:"version"`
	BuildDate   string `json:"build_date,omitempty"`
	BuildCommit string `json:"build_commit,omitempty"`
}
