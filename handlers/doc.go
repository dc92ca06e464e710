// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the menu-vote API.

# Handler Types

Each handler is a struct wrapping the voting service:

  - EventHandler: Event lifecycle, menu and allowed voters
  - VotingHandler: Vote submission and a voter's previous picks
  - ResultsHandler: Ranked results and vote resets

Handlers are created via constructor functions that accept *voting.Service:

	eventHandler := handlers.NewEventHandler(svc)

# Event Lifecycle

Events are open or closed; only open events accept votes.

	POST /api/events                        → CreateEvent
	PUT  /api/events/{eventId}/menu         → SaveMenu (validated)
	POST /api/events/{eventId}/voters       → AddVoter
	PUT  /api/events/{eventId}/status       → SetStatus

# Voting Flow

	POST /api/vote                     → SubmitVote (create or replace)
	GET  /api/votes/{eventId}/{name}   → GetVoterVotes

Voter names are matched case-insensitively against the allow-list. A
resubmission on the same sheet replaces the earlier vote.

# Errors

Service errors map to status codes in one place (errors.go):

	not found        → 404
	closed / not allowed → 403
	duplicate voter  → 409
	bad input        → 400 (with a violations list for quota failures)
	anything else    → 500 "Database error"
*/
package handlers
