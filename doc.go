// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the menu-vote API server.

menu-vote coordinates group food orders: an organiser publishes a menu made of
sheets and categories, each category with a selection quota, invited voters
pick items, and the server tallies and ranks the picks per category, marking
winners and unresolved ties.

# Starting the Server

With no configuration the server listens on port 3000 and stores data in
menuvote.db:

	go run .

Or with flags:

	go run . -p 3000 -t postgres -d "postgres://..."

# Configuration

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): sqlite, postgres or memory (default: sqlite)
  - DATABASE_URL (-d): sqlite file or PostgreSQL connection string
  - REDIS_URL (-redis): keep votes in Redis instead of the database
  - VOTE_RATE_LIMIT / VOTE_RATE_BURST: per-client vote submission limit

Values can also come from a .env file.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (events, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, rate limiting, JSON helpers
  - voting: Quota validation, tallying, ranking and the coordinating service
  - store: Event and vote persistence (memory, SQL, Redis)
  - metrics: Prometheus collectors
  - models: Domain and request/response types
  - auth: Event IDs and voter name identity
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
