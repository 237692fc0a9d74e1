// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-meet/auth"
	"github.com/danielhkuo/quickly-meet/metrics"
	"github.com/danielhkuo/quickly-meet/middleware"
	"github.com/danielhkuo/quickly-meet/models"
	"github.com/danielhkuo/quickly-meet/store"
)

type PollHandler struct {
	store   store.Store
	gate    *auth.Gate
	metrics *metrics.Metrics
}

func NewPollHandler(s store.Store, gate *auth.Gate, m *metrics.Metrics) *PollHandler {
	return &PollHandler{store: s, gate: gate, metrics: m}
}

// CreatePoll handles POST /api/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	pollID, err := h.store.CreatePoll(r.Context(), req.Title, req.Description, req.Dates)
	if err != nil {
		storeFailure(w, err, "create poll")
		return
	}

	h.metrics.PollsCreated.Inc()
	slog.Info("poll created", "poll_id", pollID, "dates", len(req.Dates))

	middleware.JSONResponse(w, http.StatusOK, models.CreatePollResponse{ID: pollID})
}

// GetPoll handles GET /api/polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	poll, err := h.store.GetPoll(r.Context(), pollID)
	if err != nil {
		storeFailure(w, err, "load poll", "poll_id", pollID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// DeletePoll handles DELETE /api/polls/{id}
// Admin only; the poll's votes are removed with it.
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, h.gate) {
		return
	}

	pollID := r.PathValue("id")
	if err := h.store.DeletePoll(r.Context(), pollID); err != nil {
		storeFailure(w, err, "delete poll", "poll_id", pollID)
		return
	}

	h.metrics.PollsDeleted.Inc()
	slog.Info("poll deleted", "poll_id", pollID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
