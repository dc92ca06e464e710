// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists events and votes.

# Backends

  - Memory: maps guarded by a mutex; for tests and throwaway servers
  - SQLStore: sqlite or postgres through database/sql
  - RedisVoteStore: votes only; events stay in one of the others

Votes are keyed by event, sheet and voter key (the lower-cased name), so
storing a vote for an existing key replaces it. Each sheet's votes are listed
in the order voters first voted, even after replacements.

UpdateEvent runs a read-modify-write callback atomically:

	ev, err := st.UpdateEvent(ctx, id, func(ev *models.Event) error {
		ev.Status = models.StatusClosed
		return nil
	})

Missing events return ErrNotFound.
*/
package store
