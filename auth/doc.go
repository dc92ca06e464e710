// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides event IDs and voter identity helpers.

# Event IDs

Events are identified by random UUIDs:

	id := auth.NewEventID()

# Voter Identity

There are no accounts; a voter is a name on the event's allow-list.
Names are compared case-insensitively after trimming:

	auth.VoterKey("  Alice ") == auth.VoterKey("alice") // "alice"
	ok := auth.IsVoterAllowed(event.AllowedVoters, "ALICE")

CleanName trims a submitted name and rejects blank ones.

# Ordering

Allow-lists are kept sorted with Thai collation:

	auth.SortVoterNames(voters)
*/
package auth
