// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/danielhkuo/menu-vote/auth"
	"github.com/danielhkuo/menu-vote/metrics"
	"github.com/danielhkuo/menu-vote/models"
	"github.com/danielhkuo/menu-vote/store"
)

// Service coordinates events, voters and votes. Every mutation of an event
// runs under that event's lock, so read-modify-write cycles never interleave.
type Service struct {
	events store.EventStore
	votes  store.VoteStore
	locks  *eventLocks
	now    func() time.Time
}

func NewService(events store.EventStore, votes store.VoteStore) *Service {
	return &Service{
		events: events,
		votes:  votes,
		locks:  newEventLocks(),
		now:    time.Now,
	}
}

// Events

func (s *Service) CreateEvent(ctx context.Context, topic, creatorName string) (models.Event, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return models.Event{}, ErrTopicRequired
	}
	creatorName = strings.TrimSpace(creatorName)
	if creatorName == "" {
		return models.Event{}, ErrCreatorRequired
	}

	ev := models.Event{
		ID:            auth.NewEventID(),
		Topic:         topic,
		CreatorName:   creatorName,
		Status:        models.StatusOpen,
		MenuData:      models.Menu{},
		AllowedVoters: []string{},
		CreatedAt:     s.now().UTC(),
	}
	if err := s.events.CreateEvent(ctx, ev); err != nil {
		return models.Event{}, err
	}

	slog.Info("event created", "event_id", ev.ID, "creator", creatorName)
	return ev, nil
}

// ListEvents returns all events, newest first
func (s *Service) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (s *Service) GetEvent(ctx context.Context, id string) (models.Event, error) {
	ev, err := s.events.GetEvent(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Event{}, ErrEventNotFound
	}
	return ev, err
}

// UpdateEventDetails changes the descriptive fields that are set in req
func (s *Service) UpdateEventDetails(ctx context.Context, id string, req models.UpdateEventRequest) (models.Event, error) {
	return s.updateEvent(ctx, id, func(ev *models.Event) error {
		if req.Topic != nil {
			topic := strings.TrimSpace(*req.Topic)
			if topic == "" {
				return ErrTopicRequired
			}
			ev.Topic = topic
		}
		if req.Date != nil {
			ev.Date = *req.Date
		}
		if req.Time != nil {
			ev.Time = *req.Time
		}
		if req.Location != nil {
			ev.Location = *req.Location
		}
		return nil
	})
}

func (s *Service) SetStatus(ctx context.Context, id, status string) (models.Event, error) {
	if status != models.StatusOpen && status != models.StatusClosed {
		return models.Event{}, ErrInvalidStatus
	}

	ev, err := s.updateEvent(ctx, id, func(ev *models.Event) error {
		ev.Status = status
		return nil
	})
	if err != nil {
		return models.Event{}, err
	}

	slog.Info("event status changed", "event_id", id, "status", status)
	return ev, nil
}

// SaveMenu replaces the event's menu after validating it. Votes already cast
// are kept; they are checked against the menu only when resubmitted.
func (s *Service) SaveMenu(ctx context.Context, id string, menu models.Menu) (models.Menu, error) {
	clean, err := ValidateMenu(menu)
	if err != nil {
		recordViolations(err)
		return nil, err
	}

	ev, err := s.updateEvent(ctx, id, func(ev *models.Event) error {
		ev.MenuData = clean
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("menu saved", "event_id", id, "sheets", len(clean))
	return ev.MenuData, nil
}

// AddVoter puts a name on the allow-list and returns the sorted list
func (s *Service) AddVoter(ctx context.Context, id, name string) ([]string, error) {
	name, err := auth.CleanName(name)
	if err != nil {
		return nil, ErrNameRequired
	}

	ev, err := s.updateEvent(ctx, id, func(ev *models.Event) error {
		if auth.IsVoterAllowed(ev.AllowedVoters, name) {
			return ErrVoterExists
		}
		ev.AllowedVoters = append(ev.AllowedVoters, name)
		auth.SortVoterNames(ev.AllowedVoters)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("voter added", "event_id", id, "voter", name)
	return ev.AllowedVoters, nil
}

// RemoveVoter takes a name off the allow-list. Votes the voter already cast
// stay in the tally.
func (s *Service) RemoveVoter(ctx context.Context, id, name string) ([]string, error) {
	ev, err := s.updateEvent(ctx, id, func(ev *models.Event) error {
		idx := auth.FindVoter(ev.AllowedVoters, name)
		if idx < 0 {
			return ErrVoterNotFound
		}
		ev.AllowedVoters = append(ev.AllowedVoters[:idx], ev.AllowedVoters[idx+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("voter removed", "event_id", id, "voter", name)
	return ev.AllowedVoters, nil
}

// DeleteEvent removes the event and every vote cast in it. Votes go first so
// a failure never leaves votes behind without their event.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	if _, err := s.events.GetEvent(ctx, id); errors.Is(err, store.ErrNotFound) {
		return ErrEventNotFound
	} else if err != nil {
		return err
	}

	if err := s.votes.ClearVotes(ctx, id); err != nil {
		return err
	}

	err := s.events.DeleteEvent(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}

	slog.Info("event deleted", "event_id", id)
	return nil
}

func (s *Service) updateEvent(ctx context.Context, id string, fn func(*models.Event) error) (models.Event, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	ev, err := s.events.UpdateEvent(ctx, id, fn)
	if errors.Is(err, store.ErrNotFound) {
		return models.Event{}, ErrEventNotFound
	}
	return ev, err
}

// Votes

// SubmitVote records a voter's selections for one sheet. A voter who already
// voted on the sheet has the earlier vote replaced, never duplicated. created
// is false for a replacement.
func (s *Service) SubmitVote(ctx context.Context, eventID, sheetName, voterName string, selections map[string][]string) (created bool, err error) {
	voterName = strings.TrimSpace(voterName)
	if voterName == "" {
		return false, ErrNameRequired
	}
	if len(selections) == 0 {
		return false, ErrSelectionsRequired
	}

	unlock := s.locks.lock(eventID)
	defer unlock()

	ev, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return false, err
	}
	if ev.Status != models.StatusOpen {
		return false, ErrVotingClosed
	}
	sheet, ok := ev.MenuData.Sheet(sheetName)
	if !ok {
		return false, ErrSheetNotFound
	}
	if !auth.IsVoterAllowed(ev.AllowedVoters, voterName) {
		return false, ErrVoterNotAllowed
	}

	normalized, err := ValidateSelections(sheet.Categories, selections)
	if err != nil {
		metrics.VotesSubmitted.WithLabelValues(metrics.OutcomeRejected).Inc()
		recordViolations(err)
		return false, err
	}

	vote := models.Vote{
		VoterName:  voterName,
		Selections: normalized,
		Timestamp:  s.now().UTC(),
	}
	created, err = s.votes.UpsertVote(ctx, eventID, sheetName, auth.VoterKey(voterName), vote)
	if err != nil {
		return false, err
	}

	outcome := metrics.OutcomeUpdated
	if created {
		outcome = metrics.OutcomeCreated
	}
	metrics.VotesSubmitted.WithLabelValues(outcome).Inc()

	slog.Info("vote recorded", "event_id", eventID, "sheet", sheetName, "voter", voterName, "is_update", !created)
	return created, nil
}

// Results tallies a sheet and ranks each of its categories
func (s *Service) Results(ctx context.Context, eventID, sheetName string) (models.ResultsResponse, error) {
	ev, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return models.ResultsResponse{}, err
	}
	sheet, ok := ev.MenuData.Sheet(sheetName)
	if !ok {
		return models.ResultsResponse{}, ErrSheetNotFound
	}

	votes, err := s.votes.ListVotes(ctx, eventID, sheetName)
	if err != nil {
		return models.ResultsResponse{}, err
	}

	tally := Tally(votes)
	return models.ResultsResponse{
		Sheet:        sheetName,
		TotalVotes:   len(votes),
		Tally:        tally.Counts,
		VotersByItem: tally.Voters,
		VotesList:    votes,
		Categories:   RankSheet(sheet.Categories, tally),
	}, nil
}

// VoterVotes returns what a voter chose on each sheet, keyed by sheet name
func (s *Service) VoterVotes(ctx context.Context, eventID, voterName string) (map[string]models.Vote, error) {
	key := auth.VoterKey(voterName)
	if key == "" {
		return nil, ErrNameRequired
	}
	return s.votes.ListVoterVotes(ctx, eventID, key)
}

// ClearVotes removes every vote of one event; the event itself stays
func (s *Service) ClearVotes(ctx context.Context, eventID string) error {
	unlock := s.locks.lock(eventID)
	defer unlock()

	if err := s.votes.ClearVotes(ctx, eventID); err != nil {
		return err
	}
	slog.Info("event votes cleared", "event_id", eventID)
	return nil
}

// ClearAllVotes removes the votes of every event
func (s *Service) ClearAllVotes(ctx context.Context) error {
	unlock := s.locks.lockAll()
	defer unlock()

	if err := s.votes.ClearAllVotes(ctx); err != nil {
		return err
	}
	slog.Info("all votes cleared")
	return nil
}

func recordViolations(err error) {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return
	}
	for _, v := range verr.Violations {
		metrics.ValidationViolations.WithLabelValues(v.Code).Inc()
	}
}
