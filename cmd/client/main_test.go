// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-admin-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Data:    models.TokenPair{AccessToken: "a", TokenType: models.TokenTypeBearer, RefreshToken: "r"},
		})
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := run(context.Background(), []string{"-s", srv.URL, "login", "admin", "pw"}, &out)
	require.NoError(t, err)

	var pair models.TokenPair
	require.NoError(t, json.Unmarshal(out.Bytes(), &pair))
	assert.Equal(t, "a", pair.AccessToken)
	assert.Equal(t, "r", pair.RefreshToken)
}

func TestRun_Me_SendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: models.UserDTO{UserID: 1, Username: "admin"}})
	}))
	defer srv.Close()

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-s", srv.URL, "-token", "tok", "me"}, &out))
	assert.Contains(t, out.String(), `"username": "admin"`)
}

func TestRun_Usage(t *testing.T) {
	tests := [][]string{
		{},
		{"login", "only-username"},
		{"refresh"},
		{"launch-rockets"},
	}

	for _, args := range tests {
		err := run(context.Background(), append([]string{"-s", "http://127.0.0.1:1"}, args...), &bytes.Buffer{})
		assert.ErrorIs(t, err, errUsage, "args %v", args)
	}
}

func TestRun_BuildInfo(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-v"}, &out))
	assert.Contains(t, out.String(), "Build version: N/A")
}
