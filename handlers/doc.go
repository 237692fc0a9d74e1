// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Meet API.

# Handler Types

Each handler is a struct holding the dependencies it needs:

  - PollHandler: Create, fetch and (admin) delete polls
  - VotingHandler: Append votes
  - ResultsHandler: Per-date counts and the results bundle
  - AdminHandler: Login, logout, session check and poll listing

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(store, gate, metrics)

# Polls and Votes

	POST   /api/polls                 → CreatePoll (returns id)
	GET    /api/polls/{id}            → GetPoll (poll with votes)
	DELETE /api/polls/{id}            → DeletePoll (admin)
	POST   /api/polls/{id}/vote       → SubmitVote
	GET    /api/polls/{id}/date-votes → GetDateVotes
	GET    /api/polls/{id}/results    → GetResults

Votes are append-only. A voter name may appear more than once and each
vote counts. Selected dates are not checked against the candidates;
the tally ignores strangers, date-votes reports them.

# Admin

	POST /api/admin/login   → Login (sets session cookie)
	POST /api/admin/logout  → Logout
	GET  /api/admin/session → Session ({loggedIn})
	GET  /api/admin/polls   → ListPolls (admin)

Admin-only handlers check the session before reading the body or
touching the store.

# Errors

Store errors map to statuses: validation 400, missing poll 404,
anything else 500 (logged). Bad credentials are 401, a missing or
invalid session on an admin route is 403.
*/
package handlers
