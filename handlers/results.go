// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-meet/middleware"
	"github.com/danielhkuo/quickly-meet/store"
	"github.com/danielhkuo/quickly-meet/tally"
)

type ResultsHandler struct {
	store store.Store
}

func NewResultsHandler(s store.Store) *ResultsHandler {
	return &ResultsHandler{store: s}
}

// GetDateVotes handles GET /api/polls/{id}/date-votes
func (h *ResultsHandler) GetDateVotes(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	poll, err := h.store.GetPoll(r.Context(), pollID)
	if err != nil {
		storeFailure(w, err, "count votes", "poll_id", pollID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tally.DateVotes(poll))
}

// GetResults handles GET /api/polls/{id}/results
// Returns the per-date tally alongside each voter's selection.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	poll, err := h.store.GetPoll(r.Context(), pollID)
	if err != nil {
		storeFailure(w, err, "load results", "poll_id", pollID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tally.Results(poll))
}
