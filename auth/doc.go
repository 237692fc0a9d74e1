// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides poll ID generation and the admin session gate.

# Poll IDs

Poll IDs are short random base62 tokens:

	id, err := auth.GeneratePollID() // e.g. "a9X2kQ"

The store assigns them and retries on collision.

# Admin Session Gate

There is exactly one admin identity, configured at startup:

	gate := auth.NewGate(auth.GateConfig{
		Username: cfg.AdminUser,
		Password: cfg.AdminPass,
		Secret:   cfg.SessionSecret,
		TTL:      cfg.SessionTTL,
	}, auth.NewMemorySessionStore(nil))

Login compares credentials in constant time and creates a Session:

	session, err := gate.Login(ctx, username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) { ... }
	gate.SetCookie(w, session)

The cookie holds an HS256 JWT signed with the session secret. Its jti is
the session ID. A request is authenticated only if the signature verifies
and the session still exists in the SessionStore, so Logout revokes the
cookie immediately:

	if err := gate.Authorize(r); errors.Is(err, auth.ErrForbidden) { ... }

# Session Stores

  - MemorySessionStore: process-local map, expiry checked on read
  - RedisSessionStore: JSON value with key TTL equal to the session expiry
*/
package auth
