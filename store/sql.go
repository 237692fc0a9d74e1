// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-meet/db"
	"github.com/danielhkuo/quickly-meet/models"
)

// SQLStore keeps polls in PostgreSQL or SQLite.
// Both dialects share the same statements; only list columns differ.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// OpenSQL opens a connection, verifies it and creates the schema
func OpenSQL(ctx context.Context, driver, url string) (*SQLStore, error) {
	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	s, err := NewSQLStore(conn, driver)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore wraps an open connection and creates the schema
func NewSQLStore(conn *sql.DB, driver string) (*SQLStore, error) {
	if driver == db.DriverSQLite {
		// SQLite allows a single writer; serialize through one connection
		conn.SetMaxOpenConns(1)
	}

	if err := db.CreateSchema(conn, driver); err != nil {
		return nil, err
	}
	return &SQLStore{db: conn, driver: driver}, nil
}

// DB exposes the underlying connection
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

func (s *SQLStore) CreatePoll(ctx context.Context, title, description string, dates []string) (string, error) {
	if err := validatePoll(title, dates); err != nil {
		return "", err
	}

	datesArg, err := s.listArg(dates)
	if err != nil {
		return "", storeError("create poll", err)
	}
	createdAt := now()

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := newPollID()
		if err != nil {
			return "", err
		}

		res, err := s.db.ExecContext(ctx, `
			INSERT INTO polls (id, title, description, dates, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING
		`, id, title, description, datesArg, s.timeArg(createdAt))
		if err != nil {
			return "", storeError("create poll", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return "", storeError("create poll", err)
		}
		if n == 1 {
			return id, nil
		}
	}

	return "", storeError("create poll", errors.New("could not allocate a unique poll id"))
}

func (s *SQLStore) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	var poll models.Poll
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, dates, created_at
		FROM polls
		WHERE id = $1
	`, id).Scan(&poll.ID, &poll.Title, &poll.Description, s.listDest(&poll.Dates), s.timeDest(&poll.CreatedAt))

	if err == sql.ErrNoRows {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, storeError("get poll", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT voter, selected_dates
		FROM votes
		WHERE poll_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return models.Poll{}, storeError("get votes", err)
	}
	defer rows.Close()

	poll.Votes = []models.Vote{}
	for rows.Next() {
		var vote models.Vote
		if err := rows.Scan(&vote.Voter, s.listDest(&vote.SelectedDates)); err != nil {
			return models.Poll{}, storeError("scan vote", err)
		}
		poll.Votes = append(poll.Votes, vote)
	}
	if err := rows.Err(); err != nil {
		return models.Poll{}, storeError("get votes", err)
	}

	poll.Dates = nonNil(poll.Dates)
	return poll, nil
}

func (s *SQLStore) ListPolls(ctx context.Context) ([]models.Poll, error) {
	polls, err := s.listPollRows(ctx)
	if err != nil {
		return nil, err
	}

	// One pass over all votes instead of a query per poll
	byPoll, err := s.listVoteRows(ctx)
	if err != nil {
		return nil, err
	}

	for i := range polls {
		if votes, ok := byPoll[polls[i].ID]; ok {
			polls[i].Votes = votes
		}
	}
	return polls, nil
}

func (s *SQLStore) listPollRows(ctx context.Context) ([]models.Poll, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, dates, created_at
		FROM polls
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, storeError("list polls", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		var poll models.Poll
		if err := rows.Scan(&poll.ID, &poll.Title, &poll.Description, s.listDest(&poll.Dates), s.timeDest(&poll.CreatedAt)); err != nil {
			return nil, storeError("scan poll", err)
		}
		poll.Dates = nonNil(poll.Dates)
		poll.Votes = []models.Vote{}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list polls", err)
	}
	return polls, nil
}

func (s *SQLStore) listVoteRows(ctx context.Context) (map[string][]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT poll_id, voter, selected_dates
		FROM votes
		ORDER BY id
	`)
	if err != nil {
		return nil, storeError("list votes", err)
	}
	defer rows.Close()

	byPoll := make(map[string][]models.Vote)
	for rows.Next() {
		var pollID string
		var vote models.Vote
		if err := rows.Scan(&pollID, &vote.Voter, s.listDest(&vote.SelectedDates)); err != nil {
			return nil, storeError("scan vote", err)
		}
		byPoll[pollID] = append(byPoll[pollID], vote)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list votes", err)
	}
	return byPoll, nil
}

func (s *SQLStore) DeletePoll(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeError("delete poll", err)
	}
	defer tx.Rollback()

	// Explicit delete; SQLite only honours ON DELETE CASCADE with foreign_keys enabled
	if _, err := tx.ExecContext(ctx, "DELETE FROM votes WHERE poll_id = $1", id); err != nil {
		return storeError("delete votes", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM polls WHERE id = $1", id)
	if err != nil {
		return storeError("delete poll", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeError("delete poll", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return storeError("delete poll", err)
	}
	return nil
}

func (s *SQLStore) AppendVote(ctx context.Context, id, voter string, selectedDates []string) error {
	if err := validateVote(voter, selectedDates); err != nil {
		return err
	}

	datesArg, err := s.listArg(selectedDates)
	if err != nil {
		return storeError("append vote", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeError("append vote", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM polls WHERE id = $1", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return storeError("append vote", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO votes (poll_id, voter, selected_dates)
		VALUES ($1, $2, $3)
	`, id, voter, datesArg)
	if err != nil {
		return storeError("append vote", err)
	}

	if err := tx.Commit(); err != nil {
		return storeError("append vote", err)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// listArg encodes a string list for the driver's list column type
func (s *SQLStore) listArg(list []string) (any, error) {
	list = nonNil(list)
	if s.driver == db.DriverPostgres {
		return pq.Array(list), nil
	}
	b, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *SQLStore) listDest(dest *[]string) sql.Scanner {
	return &listColumn{postgres: s.driver == db.DriverPostgres, dest: dest}
}

// listColumn scans a TEXT[] (postgres) or JSON array (sqlite) column
type listColumn struct {
	postgres bool
	dest     *[]string
}

func (l *listColumn) Scan(src any) error {
	if l.postgres {
		var arr pq.StringArray
		if err := arr.Scan(src); err != nil {
			return err
		}
		*l.dest = nonNil([]string(arr))
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case nil:
		*l.dest = []string{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported list column type %T", src)
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("invalid list column: %w", err)
	}
	*l.dest = nonNil(list)
	return nil
}

const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z"

func (s *SQLStore) timeArg(t time.Time) any {
	if s.driver == db.DriverPostgres {
		return t
	}
	return t.UTC().Format(sqliteTimeFormat)
}

func (s *SQLStore) timeDest(dest *time.Time) sql.Scanner {
	return &timeColumn{dest: dest}
}

// timeColumn scans TIMESTAMPTZ (postgres) or fixed-width text (sqlite)
type timeColumn struct {
	dest *time.Time
}

func (c *timeColumn) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*c.dest = v.UTC()
		return nil
	case string:
		return c.parse(v)
	case []byte:
		return c.parse(string(v))
	default:
		return fmt.Errorf("unsupported time column type %T", src)
	}
}

func (c *timeColumn) parse(v string) error {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return fmt.Errorf("invalid time column: %w", err)
	}
	*c.dest = t.UTC()
	return nil
}
