// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/menu-vote/models"
)

var lunch = []models.Category{
	{Name: "Main", Quota: 1, Items: []string{"A", "B", "C"}},
	{Name: "Drinks", Quota: 2, Items: []string{"Tea", "Coffee", "Water"}},
}

func violationCodes(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	codes := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		codes = append(codes, v.Code)
	}
	return codes
}

func TestValidateSelections(t *testing.T) {
	tests := []struct {
		name       string
		selections map[string][]string
		wantCodes  []string
		want       map[string][]string
	}{
		{
			name:       "valid",
			selections: map[string][]string{"Main": {"A"}, "Drinks": {"Tea", "Water"}},
			want:       map[string][]string{"Main": {"A"}, "Drinks": {"Tea", "Water"}},
		},
		{
			name:       "duplicates count once",
			selections: map[string][]string{"Main": {"B", "B"}, "Drinks": {"Tea", "Tea", "Coffee"}},
			want:       map[string][]string{"Main": {"B"}, "Drinks": {"Tea", "Coffee"}},
		},
		{
			name:       "over quota",
			selections: map[string][]string{"Main": {"A", "B"}, "Drinks": {"Tea"}},
			wantCodes:  []string{CodeQuotaViolation},
		},
		{
			name:       "empty category selection",
			selections: map[string][]string{"Main": {}, "Drinks": {"Tea"}},
			wantCodes:  []string{CodeQuotaViolation},
		},
		{
			name:       "missing category",
			selections: map[string][]string{"Main": {"A"}},
			wantCodes:  []string{CodeIncompleteSelection},
		},
		{
			name:       "unknown item",
			selections: map[string][]string{"Main": {"Z"}, "Drinks": {"Tea"}},
			wantCodes:  []string{CodeUnknownItem},
		},
		{
			name:       "item from another category",
			selections: map[string][]string{"Main": {"Tea"}, "Drinks": {"Tea"}},
			wantCodes:  []string{CodeUnknownItem},
		},
		{
			name:       "unknown categories sorted after known ones",
			selections: map[string][]string{"Main": {"A"}, "Drinks": {"Tea"}, "Zoo": {"x"}, "Bar": {"y"}},
			wantCodes:  []string{CodeUnknownCategory, CodeUnknownCategory},
		},
		{
			name:       "every problem reported",
			selections: map[string][]string{"Main": {"A", "B", "Q"}, "Extra": {"x"}},
			wantCodes:  []string{CodeQuotaViolation, CodeUnknownItem, CodeIncompleteSelection, CodeUnknownCategory},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateSelections(lunch, tt.selections)
			if len(tt.wantCodes) > 0 {
				assert.Nil(t, got)
				assert.Equal(t, tt.wantCodes, violationCodes(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateSelections_UnknownCategoryOrder(t *testing.T) {
	_, err := ValidateSelections(lunch, map[string][]string{
		"Main": {"A"}, "Drinks": {"Tea"}, "Zoo": {"x"}, "Bar": {"y"},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 2)
	assert.Equal(t, "Bar", verr.Violations[0].Category)
	assert.Equal(t, "Zoo", verr.Violations[1].Category)
	assert.Contains(t, err.Error(), "Bar")
}

func TestValidateSelections_ExactQuota(t *testing.T) {
	cats := []models.Category{{Name: "Side", Quota: 3, Items: []string{"a", "b", "c", "d"}}}

	_, err := ValidateSelections(cats, map[string][]string{"Side": {"a", "b", "c"}})
	assert.NoError(t, err)

	_, err = ValidateSelections(cats, map[string][]string{"Side": {"a", "b", "c", "d"}})
	assert.Equal(t, []string{CodeQuotaViolation}, violationCodes(t, err))
}
