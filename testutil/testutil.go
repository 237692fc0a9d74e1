// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-meet/auth"
	"github.com/danielhkuo/quickly-meet/cliparse"
	"github.com/danielhkuo/quickly-meet/store"
)

// Admin identity used by GetTestConfig and NewTestGate
const (
	TestAdminUser     = "admin"
	TestAdminPass     = "test-password"
	TestSessionSecret = "test-session-secret"
)

// SetupTestStore opens a fresh SQLite-backed store in a temp directory.
// The store is closed when the test ends.
func SetupTestStore(t *testing.T) store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := store.Open(context.Background(), store.Options{
		Type: store.TypeSQLite,
		URL:  path,
	})
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3000,
		DatabaseType:  store.TypeSQLite,
		DatabaseURL:   "test.db",
		MongoDatabase: cliparse.DefaultMongoDatabase,
		AdminUser:     TestAdminUser,
		AdminPass:     TestAdminPass,
		SessionSecret: TestSessionSecret,
		SessionTTL:    time.Hour,
	}
}

// NewTestGate returns a gate for the test admin backed by memory sessions
func NewTestGate(t *testing.T) *auth.Gate {
	t.Helper()

	cfg := GetTestConfig()
	return auth.NewGate(auth.GateConfig{
		Username: cfg.AdminUser,
		Password: cfg.AdminPass,
		Secret:   cfg.SessionSecret,
		TTL:      cfg.SessionTTL,
	}, auth.NewMemorySessionStore(nil))
}

// AdminCookie logs the test admin in through the gate and returns the
// session cookie to attach to admin requests
func AdminCookie(t *testing.T, gate *auth.Gate) *http.Cookie {
	t.Helper()

	session, err := gate.Login(context.Background(), TestAdminUser, TestAdminPass)
	if err != nil {
		t.Fatalf("Failed to log in test admin: %v", err)
	}

	w := httptest.NewRecorder()
	if err := gate.SetCookie(w, session); err != nil {
		t.Fatalf("Failed to issue session cookie: %v", err)
	}
	return SessionCookie(t, w)
}

// SessionCookie extracts the session cookie set on a response
func SessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	t.Fatalf("Response did not set %s cookie", auth.SessionCookieName)
	return nil
}

// CreateTestPoll creates a poll directly in the store and returns its ID
func CreateTestPoll(t *testing.T, s store.Store, title string, dates ...string) string {
	t.Helper()

	pollID, err := s.CreatePoll(context.Background(), title, "A test poll", dates)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return pollID
}

// AddTestVote appends a vote directly in the store
func AddTestVote(t *testing.T, s store.Store, pollID, voter string, dates ...string) {
	t.Helper()

	if err := s.AppendVote(context.Background(), pollID, voter, dates); err != nil {
		t.Fatalf("Failed to add test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
