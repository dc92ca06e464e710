// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"fmt"
	"strings"

	"github.com/danielhkuo/menu-vote/models"
)

// ValidateMenu checks a manually edited menu and returns a copy with names
// trimmed. All problems are reported in one *ValidationError.
func ValidateMenu(menu models.Menu) (models.Menu, error) {
	var violations []models.Violation
	out := make(models.Menu, 0, len(menu))
	seenSheets := make(map[string]bool, len(menu))

	for _, sheet := range menu {
		sheetName := strings.TrimSpace(sheet.Name)
		switch {
		case sheetName == "":
			violations = append(violations, models.Violation{
				Code:    CodeEmptyName,
				Message: "sheet name cannot be empty",
			})
		case seenSheets[sheetName]:
			violations = append(violations, models.Violation{
				Code:    CodeDuplicateName,
				Sheet:   sheetName,
				Message: fmt.Sprintf("sheet %q appears more than once", sheetName),
			})
		}
		seenSheets[sheetName] = true

		seenCats := make(map[string]bool, len(sheet.Categories))
		cats := make([]models.Category, 0, len(sheet.Categories))
		for _, cat := range sheet.Categories {
			catName := strings.TrimSpace(cat.Name)
			switch {
			case catName == "":
				violations = append(violations, models.Violation{
					Code:    CodeEmptyName,
					Sheet:   sheetName,
					Message: fmt.Sprintf("sheet %q has a category without a name", sheetName),
				})
			case seenCats[catName]:
				violations = append(violations, models.Violation{
					Code:     CodeDuplicateName,
					Sheet:    sheetName,
					Category: catName,
					Message:  fmt.Sprintf("category %q appears more than once in sheet %q", catName, sheetName),
				})
			}
			seenCats[catName] = true

			if cat.Quota < 1 {
				violations = append(violations, models.Violation{
					Code:     CodeInvalidQuota,
					Sheet:    sheetName,
					Category: catName,
					Message:  fmt.Sprintf("category %q quota must be at least 1, got %d", catName, cat.Quota),
				})
			}

			if len(cat.Items) == 0 {
				violations = append(violations, models.Violation{
					Code:     CodeEmptyCategory,
					Sheet:    sheetName,
					Category: catName,
					Message:  fmt.Sprintf("category %q has no items", catName),
				})
			}

			seenItems := make(map[string]bool, len(cat.Items))
			items := make([]string, 0, len(cat.Items))
			for _, item := range cat.Items {
				item = strings.TrimSpace(item)
				switch {
				case item == "":
					violations = append(violations, models.Violation{
						Code:     CodeEmptyName,
						Sheet:    sheetName,
						Category: catName,
						Message:  fmt.Sprintf("category %q has an item without a name", catName),
					})
				case seenItems[item]:
					violations = append(violations, models.Violation{
						Code:     CodeDuplicateName,
						Sheet:    sheetName,
						Category: catName,
						Item:     item,
						Message:  fmt.Sprintf("item %q appears more than once in category %q", item, catName),
					})
				}
				seenItems[item] = true
				items = append(items, item)
			}

			cats = append(cats, models.Category{Name: catName, Quota: cat.Quota, Items: items})
		}

		out = append(out, models.Sheet{Name: sheetName, Categories: cats})
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return out, nil
}
