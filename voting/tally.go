// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"sort"

	"github.com/danielhkuo/menu-vote/models"
)

// Tally counts every selected item across votes, in the order the votes are
// given. Nothing is validated here; stored votes are trusted.
func Tally(votes []models.Vote) models.Tally {
	t := models.Tally{
		Counts: make(map[string]int),
		Voters: make(map[string][]string),
	}

	for _, vote := range votes {
		cats := make([]string, 0, len(vote.Selections))
		for cat := range vote.Selections {
			cats = append(cats, cat)
		}
		sort.Strings(cats)

		for _, cat := range cats {
			for _, item := range vote.Selections[cat] {
				t.Counts[item]++
				t.Voters[item] = append(t.Voters[item], vote.VoterName)
			}
		}
	}

	return t
}
