// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"

	"github.com/danielhkuo/menu-vote/models"
)

// Memory keeps events and votes in process memory. Values are copied on the
// way in and out so callers never share slices or maps with the store.
type Memory struct {
	mu     sync.RWMutex
	events map[string]models.Event
	votes  map[string]map[string][]memoryVote
}

type memoryVote struct {
	key  string
	vote models.Vote
}

func NewMemory() *Memory {
	return &Memory{
		events: make(map[string]models.Event),
		votes:  make(map[string]map[string][]memoryVote),
	}
}

func (m *Memory) CreateEvent(ctx context.Context, event models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.ID] = cloneEvent(event)
	return nil
}

func (m *Memory) GetEvent(ctx context.Context, id string) (models.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ev, ok := m.events[id]
	if !ok {
		return models.Event{}, ErrNotFound
	}
	return cloneEvent(ev), nil
}

func (m *Memory) ListEvents(ctx context.Context) ([]models.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]models.Event, 0, len(m.events))
	for _, ev := range m.events {
		events = append(events, cloneEvent(ev))
	}
	return events, nil
}

func (m *Memory) UpdateEvent(ctx context.Context, id string, fn func(*models.Event) error) (models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ev, ok := m.events[id]
	if !ok {
		return models.Event{}, ErrNotFound
	}

	updated := cloneEvent(ev)
	if err := fn(&updated); err != nil {
		return models.Event{}, err
	}
	updated.ID = id

	m.events[id] = cloneEvent(updated)
	return updated, nil
}

func (m *Memory) DeleteEvent(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[id]; !ok {
		return ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *Memory) UpsertVote(ctx context.Context, eventID, sheetName, voterKey string, vote models.Vote) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sheets, ok := m.votes[eventID]
	if !ok {
		sheets = make(map[string][]memoryVote)
		m.votes[eventID] = sheets
	}

	entry := memoryVote{key: voterKey, vote: cloneVote(vote)}
	for i, existing := range sheets[sheetName] {
		if existing.key == voterKey {
			sheets[sheetName][i] = entry
			return false, nil
		}
	}
	sheets[sheetName] = append(sheets[sheetName], entry)
	return true, nil
}

func (m *Memory) ListVotes(ctx context.Context, eventID, sheetName string) ([]models.Vote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.votes[eventID][sheetName]
	votes := make([]models.Vote, 0, len(entries))
	for _, e := range entries {
		votes = append(votes, cloneVote(e.vote))
	}
	return votes, nil
}

func (m *Memory) ListVoterVotes(ctx context.Context, eventID, voterKey string) (map[string]models.Vote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]models.Vote)
	for sheet, entries := range m.votes[eventID] {
		for _, e := range entries {
			if e.key == voterKey {
				out[sheet] = cloneVote(e.vote)
				break
			}
		}
	}
	return out, nil
}

func (m *Memory) ClearVotes(ctx context.Context, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.votes, eventID)
	return nil
}

func (m *Memory) ClearAllVotes(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.votes = make(map[string]map[string][]memoryVote)
	return nil
}

func cloneEvent(ev models.Event) models.Event {
	out := ev
	out.AllowedVoters = append([]string{}, ev.AllowedVoters...)
	out.MenuData = cloneMenu(ev.MenuData)
	return out
}

func cloneMenu(menu models.Menu) models.Menu {
	if menu == nil {
		return nil
	}
	out := make(models.Menu, len(menu))
	for i, sheet := range menu {
		cats := make([]models.Category, len(sheet.Categories))
		for j, cat := range sheet.Categories {
			cats[j] = models.Category{
				Name:  cat.Name,
				Quota: cat.Quota,
				Items: append([]string(nil), cat.Items...),
			}
		}
		out[i] = models.Sheet{Name: sheet.Name, Categories: cats}
	}
	return out
}

func cloneVote(v models.Vote) models.Vote {
	out := v
	out.Selections = make(map[string][]string, len(v.Selections))
	for cat, items := range v.Selections {
		out.Selections[cat] = append([]string(nil), items...)
	}
	return out
}
