// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connections

Open accepts the configured database type and URL:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

"sqlite" uses the pure-Go modernc.org/sqlite driver with a single
connection; "postgres" uses lib/pq.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - event: Event details, status and the menu as JSON text
  - event_voter: Allowed voter names, in display order
  - vote: One vote per (event, sheet, lower-cased voter name)

# Relationships

	event 1──* event_voter
	event 1──* vote (by event_id; removed explicitly with the event)

vote.seq records the order in which voters first voted on a sheet. A
resubmission rewrites the row and keeps its seq.
*/
package db
