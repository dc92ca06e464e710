// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrEmptyName = errors.New("name is required")
)

// NewEventID creates a random event identifier
func NewEventID() string {
	return uuid.NewString()
}

// VoterKey folds a voter name into the key used for identity checks.
// The display name is stored separately and never rewritten.
func VoterKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CleanName trims a submitted name and rejects blanks
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// FindVoter returns the index of name in allowed, ignoring case, or -1
func FindVoter(allowed []string, name string) int {
	key := VoterKey(name)
	if key == "" {
		return -1
	}
	for i, v := range allowed {
		if VoterKey(v) == key {
			return i
		}
	}
	return -1
}

// IsVoterAllowed reports whether name is on the allow-list
func IsVoterAllowed(allowed []string, name string) bool {
	return FindVoter(allowed, name) >= 0
}

// SortVoterNames orders names in place the way a Thai reader expects.
// Latin names still sort alphabetically under this collation.
func SortVoterNames(names []string) {
	// Collators keep internal buffers, so build one per call
	c := collate.New(language.Thai)
	c.SortStrings(names)
}
