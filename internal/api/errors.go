// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// errorStatus maps a recommend error to an HTTP status, API code and
// client-facing message. Unknown errors become a generic 500 so internal
// detail never leaks.
func errorStatus(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		return http.StatusNotFound, ErrCodeTitleNotFound, MessageTitleNotFound
	case errors.Is(err, recommend.ErrInvalidRequest):
		return http.StatusBadRequest, ErrCodeValidation, err.Error()
	case errors.Is(err, recommend.ErrNotReady):
		return http.StatusServiceUnavailable, ErrCodeIndexNotReady, "Recommendation index is not ready yet"
	case errors.Is(err, recommend.ErrRebuildInProgress):
		return http.StatusConflict, ErrCodeRebuildInProgress, "An index rebuild is already running"
	default:
		return http.StatusInternalServerError, ErrCodeInternalError, "Internal server error"
	}
}

// writeError renders err through errorStatus.
func writeError(rw *ResponseWriter, err error) {
	status, code, message := errorStatus(err)
	rw.Error(status, code, message)
}
