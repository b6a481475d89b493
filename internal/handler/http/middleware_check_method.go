// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

// CheckHTTPMethod returns a handler meant for [chi.Mux.MethodNotAllowed].
//
// chi calls it when the path of a request matches a route but the method
// does not. Instead of the default 405 it answers 404 with the usual error
// envelope, so an unsupported method does not reveal that the path exists.
//
// Usage:
//
//	router := chi.NewRouter()
//	router.MethodNotAllowed(CheckHTTPMethod())
//	// ... register routes ...
func CheckHTTPMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, ErrRouteNotFound)
	}
}
