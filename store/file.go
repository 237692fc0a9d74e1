// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/danielhkuo/quickly-meet/models"
)

// fileDocument is the on-disk layout: { "polls": [ ... ] }
type fileDocument struct {
	Polls []models.Poll `json:"polls"`
}

// FileStore keeps all polls in a single JSON document.
//
// The document is re-read before every operation and rewritten with
// a temp file + rename on every mutation, so a crash never leaves a
// half-written file. The mutex serializes writers within the process.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// OpenFile creates the document if missing and checks it parses
func OpenFile(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file store path required")
	}

	s := &FileStore{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.write(fileDocument{Polls: []models.Poll{}}); err != nil {
			return nil, err
		}
	}

	if _, err := s.read(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) CreatePoll(_ context.Context, title, description string, dates []string) (string, error) {
	if err := validatePoll(title, dates); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", err
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := newPollID()
		if err != nil {
			return "", err
		}
		if indexOf(doc.Polls, id) >= 0 {
			continue
		}

		doc.Polls = append(doc.Polls, models.Poll{
			ID:          id,
			Title:       title,
			Description: description,
			Dates:       append([]string{}, dates...),
			CreatedAt:   now(),
			Votes:       []models.Vote{},
		})
		if err := s.write(doc); err != nil {
			return "", err
		}
		return id, nil
	}

	return "", storeError("create poll", errors.New("could not allocate a unique poll id"))
}

func (s *FileStore) GetPoll(_ context.Context, id string) (models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return models.Poll{}, err
	}

	i := indexOf(doc.Polls, id)
	if i < 0 {
		return models.Poll{}, ErrNotFound
	}
	return normalize(doc.Polls[i]), nil
}

func (s *FileStore) ListPolls(_ context.Context) ([]models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	polls := make([]models.Poll, 0, len(doc.Polls))
	for _, p := range doc.Polls {
		polls = append(polls, normalize(p))
	}
	sortNewestFirst(polls)
	return polls, nil
}

func (s *FileStore) DeletePoll(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	i := indexOf(doc.Polls, id)
	if i < 0 {
		return ErrNotFound
	}

	// Votes live inside the poll record, so they go with it
	doc.Polls = append(doc.Polls[:i], doc.Polls[i+1:]...)
	return s.write(doc)
}

func (s *FileStore) AppendVote(_ context.Context, id, voter string, selectedDates []string) error {
	if err := validateVote(voter, selectedDates); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	i := indexOf(doc.Polls, id)
	if i < 0 {
		return ErrNotFound
	}

	doc.Polls[i].Votes = append(doc.Polls[i].Votes, models.Vote{
		Voter:         voter,
		SelectedDates: append([]string{}, selectedDates...),
	})
	return s.write(doc)
}

func (s *FileStore) Ping(_ context.Context) error {
	if _, err := os.Stat(s.path); err != nil {
		return storeError("ping", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) read() (fileDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fileDocument{}, storeError("read document", err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fileDocument{}, storeError("parse document", err)
	}
	return doc, nil
}

func (s *FileStore) write(doc fileDocument) error {
	if doc.Polls == nil {
		doc.Polls = []models.Poll{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return storeError("encode document", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return storeError("write document", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return storeError("write document", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return storeError("write document", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return storeError("write document", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return storeError("write document", fmt.Errorf("rename: %w", err))
	}
	return nil
}

func indexOf(polls []models.Poll, id string) int {
	for i := range polls {
		if polls[i].ID == id {
			return i
		}
	}
	return -1
}

func normalize(p models.Poll) models.Poll {
	p.Dates = nonNil(p.Dates)
	if p.Votes == nil {
		p.Votes = []models.Vote{}
	}
	for i := range p.Votes {
		p.Votes[i].SelectedDates = nonNil(p.Votes[i].SelectedDates)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p
}

func sortNewestFirst(polls []models.Poll) {
	sort.SliceStable(polls, func(i, j int) bool {
		if !polls[i].CreatedAt.Equal(polls[j].CreatedAt) {
			return polls[i].CreatedAt.After(polls[j].CreatedAt)
		}
		return polls[i].ID < polls[j].ID
	})
}
