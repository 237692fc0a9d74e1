// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables for a driver:

	if err := db.CreateSchema(conn, db.DriverPostgres); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - polls: id, title, description, dates, created_at
  - votes: poll_id, voter, selected_dates

	polls 1──* votes

votes.poll_id uses ON DELETE CASCADE. The vote id is a sequence and only
exists to keep votes in append order.

# Dialects

PostgreSQL stores dates and selected_dates as TEXT[]. SQLite stores them
as JSON arrays in TEXT columns.
*/
package db
