// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()

	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	return m
}

func TestNew_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestInstrument_UsesRoutePattern(t *testing.T) {
	m := newTestMetrics(t)

	router := chi.NewRouter()
	router.Use(m.Instrument)
	router.Get("/api/users/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2", "3"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users/"+id, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/users/{id}", "418")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requests))
	assert.Zero(t, testutil.ToFloat64(m.inFlight))
}

func TestInstrument_ImplicitOK(t *testing.T) {
	m := newTestMetrics(t)

	h := m.Instrument(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/raw", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "unmatched", "200")))
}

func TestAuthEvent(t *testing.T) {
	m := newTestMetrics(t)

	m.AuthEvent(EventLogin, OutcomeSuccess)
	m.AuthEvent(EventLogin, OutcomeSuccess)
	m.AuthEvent(EventLogin, OutcomeRejected)
	m.RateLimited()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.authEvents.WithLabelValues(EventLogin, OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authEvents.WithLabelValues(EventLogin, OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimits))
}

func TestHandler_Exposition(t *testing.T) {
	m := newTestMetrics(t)
	m.AuthEvent(EventRefresh, OutcomeError)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `admin_auth_auth_events_total{event="refresh",outcome="error"} 1`))
	assert.Contains(t, body, "go_goroutines")
}
