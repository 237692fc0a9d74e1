// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("not authorized")
	ErrNoSession          = errors.New("no admin session")
)

const (
	SessionCookieName = "quickly_meet_session"
	DefaultSessionTTL = 24 * time.Hour

	tokenIssuer = "quickly-meet"
)

// GateConfig holds the single admin identity and cookie settings
type GateConfig struct {
	Username string
	Password string
	Secret   string
	TTL      time.Duration
	Secure   bool
}

// Gate authenticates the admin and authorizes admin-only requests.
//
// A request is Authenticated when it carries a session cookie whose
// signature verifies and whose session still exists in the store.
// Anything else is Anonymous.
type Gate struct {
	cfg      GateConfig
	sessions SessionStore
	now      func() time.Time
}

func NewGate(cfg GateConfig, sessions SessionStore) *Gate {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}
	return &Gate{cfg: cfg, sessions: sessions, now: time.Now}
}

// SetClock replaces the time source used for expiry checks
func (g *Gate) SetClock(now func() time.Time) {
	g.now = now
}

// Login checks the credentials and creates a session.
// On failure no session is created.
func (g *Gate) Login(ctx context.Context, username, password string) (Session, error) {
	if !g.credentialsMatch(username, password) {
		return Session{}, ErrInvalidCredentials
	}

	now := g.now().UTC()
	session := Session{
		ID:        uuid.NewString(),
		Username:  g.cfg.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(g.cfg.TTL),
	}

	if err := g.sessions.Save(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (g *Gate) credentialsMatch(username, password string) bool {
	if g.cfg.Username == "" || g.cfg.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.cfg.Password)) == 1
	return userOK && passOK
}

// SetCookie writes the signed session cookie
func (g *Gate) SetCookie(w http.ResponseWriter, session Session) error {
	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   session.Username,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(g.cfg.Secret))
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   g.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie on the client
func (g *Gate) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Current returns the session attached to the request.
// ErrNoSession means the request is anonymous; other errors come from the store.
func (g *Gate) Current(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, ErrNoSession
	}

	sessionID, err := g.parseToken(cookie.Value)
	if err != nil {
		return Session{}, ErrNoSession
	}

	session, err := g.sessions.Get(r.Context(), sessionID)
	if err != nil {
		return Session{}, err
	}
	if session.Expired(g.now()) {
		return Session{}, ErrNoSession
	}
	return session, nil
}

func (g *Gate) parseToken(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (any, error) {
		return []byte(g.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil || !token.Valid {
		return "", ErrNoSession
	}
	if claims.ID == "" {
		return "", ErrNoSession
	}
	return claims.ID, nil
}

// CheckSession reports whether the request carries a live admin session
func (g *Gate) CheckSession(r *http.Request) bool {
	_, err := g.Current(r)
	return err == nil
}

// Authorize returns ErrForbidden for anonymous requests
func (g *Gate) Authorize(r *http.Request) error {
	_, err := g.Current(r)
	if errors.Is(err, ErrNoSession) {
		return ErrForbidden
	}
	return err
}

// Logout destroys the request's session, if any
func (g *Gate) Logout(ctx context.Context, r *http.Request) error {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	sessionID, err := g.parseToken(cookie.Value)
	if err != nil {
		return nil
	}
	return g.sessions.Delete(ctx, sessionID)
}
