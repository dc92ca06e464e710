// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/menu-vote/models"
)

// Error families. Handlers map these to HTTP status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrEventNotFound   = fmt.Errorf("event %w", ErrNotFound)
	ErrSheetNotFound   = fmt.Errorf("sheet %w", ErrNotFound)
	ErrVoterNotFound   = fmt.Errorf("voter %w", ErrNotFound)
	ErrVotingClosed    = fmt.Errorf("voting for this event is closed: %w", ErrForbidden)
	ErrVoterNotAllowed = fmt.Errorf("name is not on the allowed voters list: %w", ErrForbidden)
	ErrVoterExists     = fmt.Errorf("voter already exists in this event: %w", ErrConflict)

	ErrTopicRequired      = fmt.Errorf("topic is required: %w", ErrInvalidInput)
	ErrCreatorRequired    = fmt.Errorf("creator name is required: %w", ErrInvalidInput)
	ErrNameRequired       = fmt.Errorf("name is required: %w", ErrInvalidInput)
	ErrInvalidStatus      = fmt.Errorf("status must be open or closed: %w", ErrInvalidInput)
	ErrSelectionsRequired = fmt.Errorf("selections are required: %w", ErrInvalidInput)
)

// Violation codes
const (
	CodeIncompleteSelection = "incomplete_selection"
	CodeQuotaViolation      = "quota_violation"
	CodeUnknownItem         = "unknown_item"
	CodeUnknownCategory     = "unknown_category"

	CodeEmptyName     = "empty_name"
	CodeDuplicateName = "duplicate_name"
	CodeInvalidQuota  = "invalid_quota"
	CodeEmptyCategory = "empty_category"
)

// ValidationError carries every violation found in one pass, so a caller can
// report them together.
type ValidationError struct {
	Violations []models.Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
