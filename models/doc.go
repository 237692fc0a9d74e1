// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, description, dates
  - SubmitVoteRequest: voter, selectedDates
  - LoginRequest: username, password

# Response Types

Types for JSON responses:

  - CreatePollResponse: id
  - SuccessResponse: success
  - SessionResponse: loggedIn
  - ErrorResponse: error, message

# Domain Types

  - Poll: title, description, candidate dates, createdAt and attached votes
  - Vote: voter display name and the dates they selected

Poll and Vote use camelCase JSON keys because browser pages read
createdAt and votes[].selectedDates directly.

# Result Types

  - TallyRow: per-date count including zero counts
  - DateVoteCount: poll_title, date, vote_count rows of the date-votes report
  - PollResults: tally plus voter summaries for the results page
*/
package models
