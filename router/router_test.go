// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-meet/metrics"
	"github.com/danielhkuo/quickly-meet/models"
	"github.com/danielhkuo/quickly-meet/store"
	"github.com/danielhkuo/quickly-meet/testutil"
)

func newTestRouter(t *testing.T) (*http.ServeMux, store.Store) {
	t.Helper()
	s := testutil.SetupTestStore(t)
	return NewRouter(s, testutil.NewTestGate(t), metrics.New()), s
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

// downStore fails every ping
type downStore struct {
	store.Store
}

func (downStore) Ping(context.Context) error {
	return errors.New("connection refused")
}

func TestHealthEndpoint_StoreDown(t *testing.T) {
	s := testutil.SetupTestStore(t)
	mux := NewRouter(downStore{s}, testutil.NewTestGate(t), metrics.New())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	expected := "quickly-meet API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestUnknownPath(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := newTestRouter(t)

	// Routes must reach a handler; handler-level 400/403/404 are fine,
	// a mux-level 405 is not
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/metrics"},
		{"GET", "/"},

		{"POST", "/api/polls"},
		{"GET", "/api/polls/test01"},
		{"DELETE", "/api/polls/test01"},
		{"POST", "/api/polls/test01/vote"},
		{"GET", "/api/polls/test01/date-votes"},
		{"GET", "/api/polls/test01/results"},

		{"POST", "/api/admin/login"},
		{"POST", "/api/admin/logout"},
		{"GET", "/api/admin/session"},
		{"GET", "/api/admin/polls"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s not registered", tc.method, tc.path)
			}
		})
	}
}

func TestWrongMethod(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("PUT", "/api/polls/test01", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

// TestAdminFlowThroughRouter drives Scenarios C and D over the mux so
// the cookie path and route patterns are exercised together
func TestAdminFlowThroughRouter(t *testing.T) {
	mux, s := newTestRouter(t)
	pollID := testutil.CreateTestPoll(t, s, "Dinner", "2024-01-01")

	// Anonymous delete is refused
	req := httptest.NewRequest("DELETE", "/api/polls/"+pollID, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// Log in
	req = testutil.MakeRequest("POST", "/api/admin/login", models.LoginRequest{
		Username: testutil.TestAdminUser,
		Password: testutil.TestAdminPass,
	}, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	cookie := testutil.SessionCookie(t, w)

	// Delete as admin
	req = httptest.NewRequest("DELETE", "/api/polls/"+pollID, nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = httptest.NewRequest("GET", "/api/polls/"+pollID, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestMetricsEndpoint(t *testing.T) {
	mux, s := newTestRouter(t)
	pollID := testutil.CreateTestPoll(t, s, "Dinner", "2024-01-01")

	req := testutil.MakeRequest("POST", "/api/polls/"+pollID+"/vote", models.SubmitVoteRequest{
		Voter:         "Alice",
		SelectedDates: []string{"2024-01-01"},
	}, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = httptest.NewRequest("GET", "/metrics", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	body := w.Body.String()
	for _, want := range []string{
		"votes_cast_total 1",
		`http_requests_total{method="POST",route="POST /api/polls/{id}/vote",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected %q in metrics output", want)
		}
	}
}
