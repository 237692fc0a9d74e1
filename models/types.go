// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Length of a generated poll ID
const PollIDLength = 6

// Request types

type CreatePollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Dates       []string `json:"dates"`
}

type SubmitVoteRequest struct {
	Voter         string   `json:"voter"`
	SelectedDates []string `json:"selectedDates"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response types

type CreatePollResponse struct {
	ID string `json:"id"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type SessionResponse struct {
	LoggedIn bool `json:"loggedIn"`
}

// Domain types

// Poll is a set of candidate dates open for voting. Dates are opaque
// date-time tokens and are never parsed.
type Poll struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Dates       []string  `json:"dates"`
	CreatedAt   time.Time `json:"createdAt"`
	Votes       []Vote    `json:"votes"`
}

// Vote is one respondent's selection of dates. Votes are immutable once stored.
type Vote struct {
	Voter         string   `json:"voter"`
	SelectedDates []string `json:"selectedDates"`
}

// Result types

// DateVoteCount is one row of the date-votes report.
type DateVoteCount struct {
	PollTitle string `json:"poll_title"`
	Date      string `json:"date"`
	VoteCount int    `json:"vote_count"`
}

type TallyRow struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type PollResults struct {
	PollID     string     `json:"poll_id"`
	Title      string     `json:"title"`
	Tally      []TallyRow `json:"tally"`
	Voters     []Vote     `json:"voters"`
	TotalVotes int        `json:"total_votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
