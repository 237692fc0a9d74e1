// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Meet API server.

Quickly Meet is a scheduling poll service: someone proposes candidate
dates, participants mark the dates they can make, and the tally shows
which dates work for the most people. A single admin can list and
delete polls.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	ADMIN_USER=admin ADMIN_PASS=secret SESSION_SECRET=... go run .

Or with flags:

	go run . -p 3000 -t postgres -d "postgres://..."

An optional .env file in the working directory is loaded first.

# Configuration

Required settings:

  - ADMIN_USER, ADMIN_PASS: The admin identity
  - SESSION_SECRET: Key for signing session cookies
  - DATABASE_URL (-d): Required for postgres and mongo

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): sqlite, postgres, file or mongo (default: sqlite)
  - MONGO_DB: Mongo database name (default: quickly_meet)
  - SESSION_TTL: Admin session lifetime (default: 24h)
  - COOKIE_SECURE: Secure session cookie
  - REDIS_URL: Keep admin sessions in redis

# Architecture

  - handlers: HTTP request handlers (polls, voting, results, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - models: Request/response and domain types
  - store: Poll persistence (postgres, sqlite, JSON file, mongo)
  - tally: Per-date vote counting
  - auth: Admin session gate, session stores, ID generation
  - metrics: Prometheus collectors
  - db: SQL schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
