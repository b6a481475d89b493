// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-admin-auth/internal/config"
	"github.com/MKhiriev/go-admin-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func gunzip(t *testing.T, data []byte) string {
	t.Helper()

	zr, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(out)
}

// echoBody answers with the request body it received.
var echoBody = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	w.Header().Set("Content-Length", "999")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(append([]byte("echo: "), body...))
})

func TestGZip(t *testing.T) {
	tests := []struct {
		name            string
		acceptEncoding  string
		compressRequest bool
		wantGzipped     bool
	}{
		{name: "plain in, plain out"},
		{name: "plain in, gzip out", acceptEncoding: "gzip", wantGzipped: true},
		{name: "several encodings accepted", acceptEncoding: "deflate, gzip;q=1.0, br", wantGzipped: true},
		{name: "gzip in, plain out", compressRequest: true},
		{name: "gzip in, gzip out", acceptEncoding: "gzip", compressRequest: true, wantGzipped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := []byte(`{"username":"alice"}`)
			if tt.compressRequest {
				body = gzipBytes(t, body)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
			if tt.compressRequest {
				req.Header.Set("Content-Encoding", "gzip")
			}
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()

			withGZip(echoBody).ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			got := rec.Body.String()
			if tt.wantGzipped {
				assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
				assert.Empty(t, rec.Header().Get("Content-Length"))
				assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))
				got = gunzip(t, rec.Body.Bytes())
			} else {
				assert.Empty(t, rec.Header().Get("Content-Encoding"))
			}
			assert.Equal(t, `echo: {"username":"alice"}`, got)
		})
	}
}

func TestGZip_InvalidRequestBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(echoBody).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, ErrInvalidContentEncoding.Error(), env.Message)
}

func TestGZip_ReusesPooledWriters(t *testing.T) {
	handler := withGZip(echoBody)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("payload"))
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "echo: payload", gunzip(t, rec.Body.Bytes()))
	}
}

func TestRoutes_CompressesAPIResponses(t *testing.T) {
	router := newTestHandler(t, newTestServices(), config.Server{}).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	var env struct {
		Success bool               `json:"success"`
		Data    models.VersionInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(gunzip(t, rec.Body.Bytes())), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "1.2.3", env.Data.Version)
}

func TestWrappedReadCloser_Close(t *testing.T) {
	called := false
	rc := &wrappedReadCloser{Reader: strings.NewReader(""), OnClose: func() { called = true }}
	require.NoError(t, rc.Close())
	assert.True(t, called)

	assert.NoError(t, (&wrappedReadCloser{Reader: strings.NewReader("")}).Close())
}
