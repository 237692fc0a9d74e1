// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore_DocumentLayout(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db.json")

	s, err := OpenFile(path)
	require.NoError(t, err)

	id, err := s.CreatePoll(ctx, "Dinner", "Friday?", []string{"d1", "d2"})
	require.NoError(t, err)
	require.NoError(t, s.AppendVote(ctx, id, "Alice", []string{"d2"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Polls []struct {
			ID          string   `json:"id"`
			Title       string   `json:"title"`
			Description string   `json:"description"`
			Dates       []string `json:"dates"`
			CreatedAt   string   `json:"createdAt"`
			Votes       []struct {
				Voter         string   `json:"voter"`
				SelectedDates []string `json:"selectedDates"`
			} `json:"votes"`
		} `json:"polls"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Polls, 1)
	require.Equal(t, id, doc.Polls[0].ID)
	require.Equal(t, []string{"d1", "d2"}, doc.Polls[0].Dates)
	require.NotEmpty(t, doc.Polls[0].CreatedAt)
	require.Equal(t, "Alice", doc.Polls[0].Votes[0].Voter)
	require.Equal(t, []string{"d2"}, doc.Polls[0].Votes[0].SelectedDates)
}

func TestFileStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db.json")

	s, err := OpenFile(path)
	require.NoError(t, err)
	id, err := s.CreatePoll(ctx, "Durable", "", []string{"d1"})
	require.NoError(t, err)

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	poll, err := reopened.GetPoll(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Durable", poll.Title)
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := OpenFile(filepath.Join(dir, "db.json"))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := s.CreatePoll(ctx, "Poll", "", []string{"d1"})
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFileStore_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenFile(path)
	require.ErrorIs(t, err, ErrStore)
}

func TestOpenFile_EmptyPath(t *testing.T) {
	_, err := OpenFile("")
	require.Error(t, err)
}
