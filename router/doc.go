// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the menu-vote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg)

main wraps the mux with middleware.CORS before serving it.

# Endpoints

Service:

	GET /           - API banner
	GET /health     - Liveness
	GET /metrics    - Prometheus metrics

Event management:

	GET    /api/events                         - List events, newest first
	POST   /api/events                         - Create event
	GET    /api/events/{eventId}               - Get event
	PUT    /api/events/{eventId}               - Update topic, date, time, location
	DELETE /api/events/{eventId}               - Delete event and its votes
	PUT    /api/events/{eventId}/status        - Open or close voting
	PUT    /api/events/{eventId}/menu          - Replace the menu
	POST   /api/events/{eventId}/voters        - Allow a voter
	DELETE /api/events/{eventId}/voters/{name} - Remove a voter

Voting:

	POST /api/vote                   - Submit or replace a vote (rate limited)
	GET  /api/votes/{eventId}/{name} - A voter's picks per sheet

Results and resets:

	GET    /api/results/{eventId}?sheet= - Ranked results for one sheet
	DELETE /api/events/{eventId}/votes   - Clear one event's votes
	DELETE /api/votes                    - Clear every event's votes

# Rate Limiting

POST /api/vote goes through a per-client token bucket sized by
cfg.VoteRateLimit and cfg.VoteRateBurst. Clients are keyed on the connection
address unless cfg.TrustProxy is set.

# Handler Initialization

All handlers share one voting service:

	eventHandler := handlers.NewEventHandler(svc)
	votingHandler := handlers.NewVotingHandler(svc)
	resultsHandler := handlers.NewResultsHandler(svc)

Every /api route is wrapped in middleware.WithLogging.
*/
package router
