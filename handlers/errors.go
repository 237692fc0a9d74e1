// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-meet/auth"
	"github.com/danielhkuo/quickly-meet/middleware"
	"github.com/danielhkuo/quickly-meet/store"
)

// storeFailure translates a store error into a response.
// action names the operation in the 500 message and the log line.
func storeFailure(w http.ResponseWriter, err error, action string, attrs ...any) {
	switch {
	case errors.Is(err, store.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	default:
		slog.Error("failed to "+action, append(attrs, "error", err)...)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

// authorize answers 403 (or 500 when the session store fails) and
// reports false when the request may not continue
func authorize(w http.ResponseWriter, r *http.Request, gate *auth.Gate) bool {
	err := gate.Authorize(r)
	if err == nil {
		return true
	}
	if errors.Is(err, auth.ErrForbidden) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin login required")
		return false
	}
	slog.Error("failed to check admin session", "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to check admin session")
	return false
}

func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, store.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(store.ErrValidation.Error())+2:]
	}
	return msg
}
