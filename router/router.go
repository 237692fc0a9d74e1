// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-meet/auth"
	"github.com/danielhkuo/quickly-meet/handlers"
	"github.com/danielhkuo/quickly-meet/metrics"
	"github.com/danielhkuo/quickly-meet/middleware"
	"github.com/danielhkuo/quickly-meet/store"
)

const healthTimeout = 2 * time.Second

func NewRouter(s store.Store, gate *auth.Gate, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(s, gate, m)
	votingHandler := handlers.NewVotingHandler(s, m)
	resultsHandler := handlers.NewResultsHandler(s)
	adminHandler := handlers.NewAdminHandler(s, gate, m)

	// handle registers an API route with logging and metrics under its pattern
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.WithMetrics(m, pattern, h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := s.Ping(ctx); err != nil {
			slog.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("UNAVAILABLE"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics
	mux.Handle("GET /metrics", m.Handler())

	// Polls (public, delete is admin only)
	handle("POST /api/polls", pollHandler.CreatePoll)
	handle("GET /api/polls/{id}", pollHandler.GetPoll)
	handle("DELETE /api/polls/{id}", pollHandler.DeletePoll)

	// Voting and results (public)
	handle("POST /api/polls/{id}/vote", votingHandler.SubmitVote)
	handle("GET /api/polls/{id}/date-votes", resultsHandler.GetDateVotes)
	handle("GET /api/polls/{id}/results", resultsHandler.GetResults)

	// Admin session
	handle("POST /api/admin/login", adminHandler.Login)
	handle("POST /api/admin/logout", adminHandler.Logout)
	handle("GET /api/admin/session", adminHandler.Session)
	handle("GET /api/admin/polls", adminHandler.ListPolls)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-meet API v1"))
	})

	return mux
}
