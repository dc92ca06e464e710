// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"sort"

	"github.com/danielhkuo/menu-vote/models"
)

// Rank orders a category's items by vote count and classifies them.
//
// Items keep menu order among equal counts. The winner threshold is the count
// at position min(quota, items)-1. Items above it win; items at it win unless
// more items reach the threshold than the quota has room for, in which case
// the ones at the threshold are marked tied and left for a human to break.
func Rank(category models.Category, tally models.Tally) models.CategoryResult {
	items := make([]models.RankedItem, len(category.Items))
	for i, name := range category.Items {
		voters := append([]string{}, tally.Voters[name]...)
		items[i] = models.RankedItem{
			Item:   name,
			Count:  tally.Counts[name],
			Voters: voters,
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})

	threshold := 0
	if len(items) > 0 {
		idx := max(min(category.Quota, len(items))-1, 0)
		threshold = items[idx].Count
	}

	above, tied := 0, 0
	for _, it := range items {
		switch {
		case it.Count > threshold:
			above++
		case it.Count == threshold && it.Count > 0:
			tied++
		}
	}
	unresolved := above+tied > category.Quota

	for i := range items {
		it := &items[i]
		switch {
		case it.Count == 0 || it.Count < threshold:
			it.Classification = models.ClassNone
		case it.Count == threshold && unresolved:
			it.Classification = models.ClassTied
		default:
			it.Classification = models.ClassWinner
		}
	}

	return models.CategoryResult{
		Category:         category.Name,
		Quota:            category.Quota,
		Threshold:        threshold,
		HasUnresolvedTie: unresolved,
		Items:            items,
	}
}

// RankSheet ranks every category of a sheet, in menu order
func RankSheet(categories []models.Category, tally models.Tally) []models.CategoryResult {
	results := make([]models.CategoryResult, 0, len(categories))
	for _, cat := range categories {
		results = append(results, Rank(cat, tally))
	}
	return results
}
