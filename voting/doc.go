// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting holds the menu voting rules and the service that applies them.

# Validation

ValidateSelections checks a voter's picks against one sheet: every category
present, 1..quota distinct items each, nothing unknown. ValidateMenu checks an
edited menu for blank or duplicate names, quotas below 1 and empty categories.
Both report every problem at once in a *ValidationError.

# Tally and Ranking

	tally := voting.Tally(votes)
	results := voting.RankSheet(sheet.Categories, tally)

Rank sorts items by count (stable, so menu order breaks equal counts) and
takes the count at position quota as the threshold. Items above it win. Items
at it win too, unless more items reach the threshold than the quota allows,
in which case they are tied and the category has an unresolved tie. Items
with no votes never win.

# Service

Service wires the rules to storage. Mutations of one event are serialized
with a per-event lock; clearing every vote takes all locks.
*/
package voting
