// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/menu-vote/models"
)

var ErrNotFound = errors.New("record not found")

// EventStore persists events together with their menu and allowed voters
type EventStore interface {
	CreateEvent(ctx context.Context, event models.Event) error
	GetEvent(ctx context.Context, id string) (models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)

	// UpdateEvent loads the event, applies fn and writes the result back as
	// one unit. If fn returns an error nothing is written and that error is
	// returned unchanged.
	UpdateEvent(ctx context.Context, id string, fn func(*models.Event) error) (models.Event, error)

	DeleteEvent(ctx context.Context, id string) error
}

// VoteStore persists at most one vote per (event, sheet, voter key)
type VoteStore interface {
	// UpsertVote replaces the voter's vote in place or appends a new one.
	// created reports which of the two happened.
	UpsertVote(ctx context.Context, eventID, sheetName, voterKey string, vote models.Vote) (created bool, err error)

	// ListVotes returns a sheet's votes in the order they were first cast
	ListVotes(ctx context.Context, eventID, sheetName string) ([]models.Vote, error)

	// ListVoterVotes returns the voter's vote on each sheet, keyed by sheet name
	ListVoterVotes(ctx context.Context, eventID, voterKey string) (map[string]models.Vote, error)

	ClearVotes(ctx context.Context, eventID string) error
	ClearAllVotes(ctx context.Context) error
}
