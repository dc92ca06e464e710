// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"fmt"
	"sort"

	"github.com/danielhkuo/menu-vote/models"
)

// ValidateSelections checks a voter's picks against the categories of one sheet.
//
// Every category must be present with 1..quota distinct items, every item must
// belong to its category, and no selection may name a category the sheet does
// not have. Repeated items count once. On success the de-duplicated selections
// are returned; otherwise a *ValidationError listing all violations, in sheet
// category order followed by unknown categories sorted by name.
func ValidateSelections(categories []models.Category, selections map[string][]string) (map[string][]string, error) {
	var violations []models.Violation
	normalized := make(map[string][]string, len(categories))
	known := make(map[string]bool, len(categories))

	for _, cat := range categories {
		known[cat.Name] = true

		picked, ok := selections[cat.Name]
		if !ok {
			violations = append(violations, models.Violation{
				Code:     CodeIncompleteSelection,
				Category: cat.Name,
				Message:  fmt.Sprintf("no selection for category %q", cat.Name),
			})
			continue
		}

		picked = dedupe(picked)
		if len(picked) < 1 || len(picked) > cat.Quota {
			violations = append(violations, models.Violation{
				Code:     CodeQuotaViolation,
				Category: cat.Name,
				Message:  fmt.Sprintf("category %q needs 1 to %d items, got %d", cat.Name, cat.Quota, len(picked)),
			})
		}

		valid := make(map[string]bool, len(cat.Items))
		for _, item := range cat.Items {
			valid[item] = true
		}
		for _, item := range picked {
			if !valid[item] {
				violations = append(violations, models.Violation{
					Code:     CodeUnknownItem,
					Category: cat.Name,
					Item:     item,
					Message:  fmt.Sprintf("item %q is not in category %q", item, cat.Name),
				})
			}
		}

		normalized[cat.Name] = picked
	}

	var extra []string
	for name := range selections {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		violations = append(violations, models.Violation{
			Code:     CodeUnknownCategory,
			Category: name,
			Message:  fmt.Sprintf("category %q does not exist on this sheet", name),
		})
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return normalized, nil
}

// dedupe keeps the first occurrence of each item
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
