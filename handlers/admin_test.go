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

	"github.com/danielhkuo/quickly-meet/auth"
	"github.com/danielhkuo/quickly-meet/metrics"
	"github.com/danielhkuo/quickly-meet/models"
	"github.com/danielhkuo/quickly-meet/testutil"
)

func checkSession(t *testing.T, handler *AdminHandler, cookie *http.Cookie) bool {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/admin/session", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	handler.Session(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.SessionResponse
	testutil.AssertJSON(t, w, &resp)
	return resp.LoggedIn
}

func TestLogin(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewAdminHandler(s, testutil.NewTestGate(t), metrics.New())

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantCookie bool
	}{
		{
			name:       "valid credentials",
			body:       models.LoginRequest{Username: testutil.TestAdminUser, Password: testutil.TestAdminPass},
			wantStatus: http.StatusOK,
			wantCookie: true,
		},
		{
			name:       "wrong password",
			body:       models.LoginRequest{Username: testutil.TestAdminUser, Password: "wrong"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong user",
			body:       models.LoginRequest{Username: "wrong", Password: testutil.TestAdminPass},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty credentials",
			body:       models.LoginRequest{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid JSON",
			body:       "{nope",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if str, ok := tt.body.(string); ok {
				req = httptest.NewRequest("POST", "/api/admin/login", bytes.NewBufferString(str))
			} else {
				req = testutil.MakeRequest("POST", "/api/admin/login", tt.body, nil)
			}
			w := httptest.NewRecorder()

			handler.Login(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)

			var found bool
			for _, c := range w.Result().Cookies() {
				if c.Name == auth.SessionCookieName && c.Value != "" {
					found = true
					if !c.HttpOnly {
						t.Error("Expected HttpOnly session cookie")
					}
				}
			}
			if found != tt.wantCookie {
				t.Errorf("Expected cookie=%v, got %v", tt.wantCookie, found)
			}
		})
	}
}

func TestSession(t *testing.T) {
	s := testutil.SetupTestStore(t)
	gate := testutil.NewTestGate(t)
	handler := NewAdminHandler(s, gate, metrics.New())

	if checkSession(t, handler, nil) {
		t.Error("Expected anonymous request to be logged out")
	}

	cookie := testutil.AdminCookie(t, gate)
	if !checkSession(t, handler, cookie) {
		t.Error("Expected admin cookie to be logged in")
	}

	garbage := &http.Cookie{Name: auth.SessionCookieName, Value: "not-a-token"}
	if checkSession(t, handler, garbage) {
		t.Error("Expected garbage cookie to be logged out")
	}
}

func TestLogout(t *testing.T) {
	s := testutil.SetupTestStore(t)
	gate := testutil.NewTestGate(t)
	handler := NewAdminHandler(s, gate, metrics.New())

	cookie := testutil.AdminCookie(t, gate)

	req := httptest.NewRequest("POST", "/api/admin/logout", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	handler.Logout(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	cleared := testutil.SessionCookie(t, w)
	if cleared.MaxAge >= 0 {
		t.Errorf("Expected cookie to be expired, got MaxAge %d", cleared.MaxAge)
	}

	// The old cookie no longer opens a session
	if checkSession(t, handler, cookie) {
		t.Error("Expected session to be destroyed")
	}

	t.Run("anonymous logout succeeds", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/admin/logout", nil)
		w := httptest.NewRecorder()
		handler.Logout(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
	})
}

func TestAdminListPolls(t *testing.T) {
	s := testutil.SetupTestStore(t)
	gate := testutil.NewTestGate(t)
	handler := NewAdminHandler(s, gate, metrics.New())

	first := testutil.CreateTestPoll(t, s, "First", "2024-01-01")
	second := testutil.CreateTestPoll(t, s, "Second", "2024-02-01")
	testutil.AddTestVote(t, s, first, "Alice", "2024-01-01")

	t.Run("anonymous is forbidden", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/polls", nil)
		w := httptest.NewRecorder()
		handler.ListPolls(w, req)

		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("admin sees every poll with votes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/polls", nil)
		req.AddCookie(testutil.AdminCookie(t, gate))
		w := httptest.NewRecorder()
		handler.ListPolls(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var polls []models.Poll
		testutil.AssertJSON(t, w, &polls)
		if len(polls) != 2 {
			t.Fatalf("Expected 2 polls, got %d", len(polls))
		}

		// Newest first
		if polls[0].ID != second || polls[1].ID != first {
			t.Errorf("Expected [%s %s], got [%s %s]", second, first, polls[0].ID, polls[1].ID)
		}
		if len(polls[1].Votes) != 1 {
			t.Errorf("Expected votes on %s, got %+v", first, polls[1].Votes)
		}
	})
}

// failingSessions makes every session lookup fail
type failingSessions struct{}

var errSessionsDown = errors.New("sessions down")

func (failingSessions) Save(context.Context, auth.Session) error { return errSessionsDown }
func (failingSessions) Get(context.Context, string) (auth.Session, error) {
	return auth.Session{}, errSessionsDown
}
func (failingSessions) Delete(context.Context, string) error { return errSessionsDown }

func TestAdmin_SessionStoreFailure(t *testing.T) {
	s := testutil.SetupTestStore(t)
	working := testutil.NewTestGate(t)
	cookie := testutil.AdminCookie(t, working)

	cfg := testutil.GetTestConfig()
	broken := auth.NewGate(auth.GateConfig{
		Username: cfg.AdminUser,
		Password: cfg.AdminPass,
		Secret:   cfg.SessionSecret,
	}, failingSessions{})
	handler := NewAdminHandler(s, broken, metrics.New())

	t.Run("login reports server error", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/admin/login", models.LoginRequest{
			Username: cfg.AdminUser,
			Password: cfg.AdminPass,
		}, nil)
		w := httptest.NewRecorder()
		handler.Login(w, req)

		testutil.AssertStatus(t, w, http.StatusInternalServerError)
	})

	t.Run("list polls reports server error", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/polls", nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		handler.ListPolls(w, req)

		testutil.AssertStatus(t, w, http.StatusInternalServerError)
	})
}
