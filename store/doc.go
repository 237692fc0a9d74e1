// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists polls and their votes.

# Backends

Open picks a backend by type:

	s, err := store.Open(ctx, store.Options{Type: store.TypeSQLite, URL: "quickly-meet.db"})

  - postgres: lib/pq, TEXT[] list columns
  - sqlite: modernc.org/sqlite, JSON list columns (default)
  - file: one JSON document {"polls": [...]}, rewritten atomically
  - mongo: one document per poll with embedded votes

# Errors

  - ErrValidation: empty title, no dates, empty voter, empty selection
  - ErrNotFound: unknown poll ID
  - ErrStore: anything the backend reports; wraps the cause

Poll IDs are generated here, never accepted from callers.
*/
package store
