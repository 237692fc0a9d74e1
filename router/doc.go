// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Meet API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, gate, metrics)

Every /api route is wrapped with request logging and metrics. The
metrics route label is the registered pattern, so poll IDs never
become label values.

# Endpoints

Operations:

	GET /health  - 200 OK, or 503 when the store does not answer
	GET /metrics - Prometheus exposition

Polls:

	POST   /api/polls                 - Create poll
	GET    /api/polls/{id}            - Poll with votes
	DELETE /api/polls/{id}            - Delete poll and votes (admin)
	POST   /api/polls/{id}/vote       - Append a vote
	GET    /api/polls/{id}/date-votes - Vote count per date
	GET    /api/polls/{id}/results    - Tally and voter list

Admin:

	POST /api/admin/login   - Start session, sets cookie
	POST /api/admin/logout  - End session
	GET  /api/admin/session - {loggedIn}
	GET  /api/admin/polls   - All polls (admin)
*/
package router
