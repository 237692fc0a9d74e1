// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-meet/metrics"
	"github.com/danielhkuo/quickly-meet/middleware"
	"github.com/danielhkuo/quickly-meet/models"
	"github.com/danielhkuo/quickly-meet/store"
)

type VotingHandler struct {
	store   store.Store
	metrics *metrics.Metrics
}

func NewVotingHandler(s store.Store, m *metrics.Metrics) *VotingHandler {
	return &VotingHandler{store: s, metrics: m}
}

// SubmitVote handles POST /api/polls/{id}/vote
//
// Votes are append-only: the same voter name may vote again and both
// votes count. Selected dates are stored as given, even when they are
// not among the poll's candidates.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.store.AppendVote(r.Context(), pollID, req.Voter, req.SelectedDates); err != nil {
		storeFailure(w, err, "submit vote", "poll_id", pollID)
		return
	}

	h.metrics.VotesCast.Inc()
	slog.Info("vote submitted", "poll_id", pollID, "selected", len(req.SelectedDates))

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
