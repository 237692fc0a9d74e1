// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-meet/metrics"
	"github.com/danielhkuo/quickly-meet/models"
	"github.com/danielhkuo/quickly-meet/store"
	"github.com/danielhkuo/quickly-meet/testutil"
)

func TestCreatePoll(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewPollHandler(s, testutil.NewTestGate(t), metrics.New())

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{
			name: "valid poll",
			body: models.CreatePollRequest{
				Title:       "Dinner",
				Description: "Pick a night",
				Dates:       []string{"2024-01-01T18:00Z", "2024-01-02T18:00Z"},
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "no description",
			body: models.CreatePollRequest{
				Title: "Lunch",
				Dates: []string{"2024-01-03T12:00Z"},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing title",
			body:       models.CreatePollRequest{Dates: []string{"2024-01-01"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "blank title",
			body:       models.CreatePollRequest{Title: "   ", Dates: []string{"2024-01-01"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no dates",
			body:       models.CreatePollRequest{Title: "Dinner", Dates: []string{}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid JSON",
			body:       "not json",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if str, ok := tt.body.(string); ok {
				req = httptest.NewRequest("POST", "/api/polls", bytes.NewBufferString(str))
			} else {
				req = testutil.MakeRequest("POST", "/api/polls", tt.body, nil)
			}
			w := httptest.NewRecorder()

			handler.CreatePoll(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)

			if tt.wantStatus == http.StatusOK {
				var resp models.CreatePollResponse
				testutil.AssertJSON(t, w, &resp)
				if len(resp.ID) != models.PollIDLength {
					t.Errorf("Expected %d-char id, got %q", models.PollIDLength, resp.ID)
				}
			}
		})
	}

	// Only the two valid polls were stored
	polls, err := s.ListPolls(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(polls) != 2 {
		t.Errorf("Expected 2 polls stored, got %d", len(polls))
	}
}

func TestGetPoll(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewPollHandler(s, testutil.NewTestGate(t), metrics.New())

	pollID := testutil.CreateTestPoll(t, s, "Dinner", "2024-01-01", "2024-01-02")
	testutil.AddTestVote(t, s, pollID, "Alice", "2024-01-01")

	t.Run("existing poll", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/polls/"+pollID, nil)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()

		handler.GetPoll(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var poll models.Poll
		testutil.AssertJSON(t, w, &poll)
		if poll.ID != pollID || poll.Title != "Dinner" {
			t.Errorf("Unexpected poll %+v", poll)
		}
		if len(poll.Dates) != 2 {
			t.Errorf("Expected 2 dates, got %v", poll.Dates)
		}
		if len(poll.Votes) != 1 || poll.Votes[0].Voter != "Alice" {
			t.Errorf("Expected Alice's vote, got %+v", poll.Votes)
		}
	})

	t.Run("missing poll", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/polls/nope00", nil)
		req.SetPathValue("id", "nope00")
		w := httptest.NewRecorder()

		handler.GetPoll(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestDeletePoll(t *testing.T) {
	s := testutil.SetupTestStore(t)
	gate := testutil.NewTestGate(t)
	handler := NewPollHandler(s, gate, metrics.New())
	cookie := testutil.AdminCookie(t, gate)

	t.Run("anonymous is forbidden", func(t *testing.T) {
		pollID := testutil.CreateTestPoll(t, s, "Keep me", "2024-01-01")

		req := httptest.NewRequest("DELETE", "/api/polls/"+pollID, nil)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()

		handler.DeletePoll(w, req)

		testutil.AssertStatus(t, w, http.StatusForbidden)
		if _, err := s.GetPoll(context.Background(), pollID); err != nil {
			t.Errorf("Poll should survive a forbidden delete: %v", err)
		}
	})

	t.Run("admin deletes poll and votes", func(t *testing.T) {
		pollID := testutil.CreateTestPoll(t, s, "Delete me", "2024-01-01")
		testutil.AddTestVote(t, s, pollID, "Alice", "2024-01-01")

		req := httptest.NewRequest("DELETE", "/api/polls/"+pollID, nil)
		req.SetPathValue("id", pollID)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()

		handler.DeletePoll(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.SuccessResponse
		testutil.AssertJSON(t, w, &resp)
		if !resp.Success {
			t.Error("Expected success")
		}

		_, err := s.GetPoll(context.Background(), pollID)
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Expected poll to be gone, got %v", err)
		}
	})

	t.Run("admin deleting missing poll", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/polls/nope00", nil)
		req.SetPathValue("id", "nope00")
		req.AddCookie(cookie)
		w := httptest.NewRecorder()

		handler.DeletePoll(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("tampered cookie is forbidden", func(t *testing.T) {
		pollID := testutil.CreateTestPoll(t, s, "Keep me too", "2024-01-01")

		req := httptest.NewRequest("DELETE", "/api/polls/"+pollID, nil)
		req.SetPathValue("id", pollID)
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value + "x"})
		w := httptest.NewRecorder()

		handler.DeletePoll(w, req)

		testutil.AssertStatus(t, w, http.StatusForbidden)
	})
}
