// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-meet/auth"
	"github.com/danielhkuo/quickly-meet/metrics"
	"github.com/danielhkuo/quickly-meet/middleware"
	"github.com/danielhkuo/quickly-meet/models"
	"github.com/danielhkuo/quickly-meet/store"
)

type AdminHandler struct {
	store   store.Store
	gate    *auth.Gate
	metrics *metrics.Metrics
}

func NewAdminHandler(s store.Store, gate *auth.Gate, m *metrics.Metrics) *AdminHandler {
	return &AdminHandler{store: s, gate: gate, metrics: m}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	session, err := h.gate.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		h.metrics.AdminLogins.WithLabelValues("failure").Inc()
		slog.Info("admin login rejected", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to create admin session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if err := h.gate.SetCookie(w, session); err != nil {
		slog.Error("failed to issue session cookie", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	h.metrics.AdminLogins.WithLabelValues("success").Inc()
	slog.Info("admin logged in", "session", session.ID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Logout handles POST /api/admin/logout
// Always succeeds; the cookie is cleared even if no session existed.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Logout(r.Context(), r); err != nil {
		slog.Error("failed to destroy admin session", "error", err)
	}
	h.gate.ClearCookie(w)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Session handles GET /api/admin/session
func (h *AdminHandler) Session(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		LoggedIn: h.gate.CheckSession(r),
	})
}

// ListPolls handles GET /api/admin/polls
func (h *AdminHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, h.gate) {
		return
	}

	polls, err := h.store.ListPolls(r.Context())
	if err != nil {
		storeFailure(w, err, "list polls")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}
