// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the admin API.
//
// It wires the chi router, the authentication and authorization middleware
// built on [service.Guard], per-client rate limiting of credential
// endpoints, request tracing, access logging and Prometheus
// instrumentation. Routes under /api also accept and emit gzip bodies.
// Every JSON body uses the [models.APIResponse] envelope.
package http
