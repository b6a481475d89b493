// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, h.services.AppInfoService.GetVersionInfo(r.Context()), http.StatusOK)
}
