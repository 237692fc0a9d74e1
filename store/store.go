// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-meet/auth"
	"github.com/danielhkuo/quickly-meet/models"
)

var (
	ErrNotFound   = errors.New("poll not found")
	ErrValidation = errors.New("invalid input")
	ErrStore      = errors.New("storage failure")
)

// Backend names accepted by Open
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
	TypeFile     = "file"
	TypeMongo    = "mongo"
)

// maxIDAttempts bounds retries when a generated poll ID is already taken
const maxIDAttempts = 5

// Store persists polls and their votes.
//
// Every call goes to the backing storage; nothing is cached in process.
// Votes are append-only and come back in the order they were appended.
type Store interface {
	CreatePoll(ctx context.Context, title, description string, dates []string) (string, error)
	GetPoll(ctx context.Context, id string) (models.Poll, error)
	// ListPolls returns all polls, newest first
	ListPolls(ctx context.Context) ([]models.Poll, error)
	// DeletePoll removes the poll and all of its votes atomically
	DeletePoll(ctx context.Context, id string) error
	AppendVote(ctx context.Context, id, voter string, selectedDates []string) error
	Ping(ctx context.Context) error
	Close() error
}

// Options selects and configures a backend
type Options struct {
	Type string
	// URL is a DSN for postgres/sqlite/mongo, or a file path for the file backend
	URL string
	// MongoDatabase names the database for the mongo backend
	MongoDatabase string
}

// Open connects to the configured backend and prepares its schema
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Type {
	case TypePostgres, TypeSQLite:
		return OpenSQL(ctx, opts.Type, opts.URL)
	case TypeFile:
		return OpenFile(opts.URL)
	case TypeMongo:
		return OpenMongo(ctx, opts.URL, opts.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown store type %q", opts.Type)
	}
}

func validatePoll(title string, dates []string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(dates) == 0 {
		return fmt.Errorf("%w: at least one date is required", ErrValidation)
	}
	return nil
}

func validateVote(voter string, selectedDates []string) error {
	if strings.TrimSpace(voter) == "" {
		return fmt.Errorf("%w: voter is required", ErrValidation)
	}
	if len(selectedDates) == 0 {
		return fmt.Errorf("%w: at least one date must be selected", ErrValidation)
	}
	return nil
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}

// nonNil keeps empty lists encoding as [] rather than null
func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func newPollID() (string, error) {
	id, err := auth.GeneratePollID()
	if err != nil {
		return "", storeError("generate poll id", err)
	}
	return id, nil
}

func now() time.Time {
	return time.Now().UTC()
}
