// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/menu-vote/models"
)

// SQL dialects understood by SQLStore
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// SQLStore implements EventStore and VoteStore on database/sql. Queries are
// written with ? placeholders and rebound for postgres.
type SQLStore struct {
	db      *sql.DB
	dialect string
}

func NewSQLStore(db *sql.DB, dialect string) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// rebind turns ? placeholders into $1, $2, ... for postgres
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const eventColumns = `id, topic, creator_name, event_date, event_time, location, status, menu_data, created_at`

// Events

func (s *SQLStore) CreateEvent(ctx context.Context, event models.Event) error {
	menuJSON, err := json.Marshal(event.MenuData)
	if err != nil {
		return fmt.Errorf("failed to encode menu: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.rebind(`
		INSERT INTO event (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), event.ID, event.Topic, event.CreatorName, event.Date, event.Time, event.Location,
		event.Status, string(menuJSON), event.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	if err := s.writeVoters(ctx, tx, event.ID, event.AllowedVoters); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event: %w", err)
	}
	return nil
}

func (s *SQLStore) GetEvent(ctx context.Context, id string) (models.Event, error) {
	return s.loadEvent(ctx, s.db, id, false)
}

func (s *SQLStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	// Read each result set to the end before starting the next one; sqlite
	// runs with a single connection.
	events, err := s.queryEvents(ctx)
	if err != nil {
		return nil, err
	}
	voters, err := s.queryAllVoters(ctx)
	if err != nil {
		return nil, err
	}

	for i := range events {
		if names, ok := voters[events[i].ID]; ok {
			events[i].AllowedVoters = names
		}
	}
	return events, nil
}

func (s *SQLStore) queryEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+eventColumns+`
		FROM event
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}

func (s *SQLStore) queryAllVoters(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_id, name
		FROM event_voter
		ORDER BY event_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	voters := make(map[string][]string)
	for rows.Next() {
		var eventID, name string
		if err := rows.Scan(&eventID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters[eventID] = append(voters[eventID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read voters: %w", err)
	}
	return voters, nil
}

func (s *SQLStore) UpdateEvent(ctx context.Context, id string, fn func(*models.Event) error) (models.Event, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ev, err := s.loadEvent(ctx, tx, id, true)
	if err != nil {
		return models.Event{}, err
	}

	if err := fn(&ev); err != nil {
		return models.Event{}, err
	}
	ev.ID = id

	menuJSON, err := json.Marshal(ev.MenuData)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to encode menu: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.rebind(`
		UPDATE event
		SET topic = ?, creator_name = ?, event_date = ?, event_time = ?,
		    location = ?, status = ?, menu_data = ?
		WHERE id = ?
	`), ev.Topic, ev.CreatorName, ev.Date, ev.Time, ev.Location, ev.Status, string(menuJSON), id)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to update event: %w", err)
	}

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM event_voter WHERE event_id = ?`), id); err != nil {
		return models.Event{}, fmt.Errorf("failed to clear voters: %w", err)
	}
	if err := s.writeVoters(ctx, tx, id, ev.AllowedVoters); err != nil {
		return models.Event{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Event{}, fmt.Errorf("failed to commit event update: %w", err)
	}
	return ev, nil
}

func (s *SQLStore) DeleteEvent(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM event_voter WHERE event_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete voters: %w", err)
	}

	res, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM event WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event delete: %w", err)
	}
	return nil
}

func (s *SQLStore) loadEvent(ctx context.Context, q querier, id string, forUpdate bool) (models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM event WHERE id = ?`
	if forUpdate && s.dialect == DialectPostgres {
		query += ` FOR UPDATE`
	}

	ev, err := scanEvent(q.QueryRowContext(ctx, s.rebind(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, ErrNotFound
	}
	if err != nil {
		return models.Event{}, err
	}

	rows, err := q.QueryContext(ctx, s.rebind(`
		SELECT name FROM event_voter
		WHERE event_id = ?
		ORDER BY position
	`), id)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return models.Event{}, fmt.Errorf("failed to scan voter: %w", err)
		}
		ev.AllowedVoters = append(ev.AllowedVoters, name)
	}
	if err := rows.Err(); err != nil {
		return models.Event{}, fmt.Errorf("failed to read voters: %w", err)
	}

	return ev, nil
}

func (s *SQLStore) writeVoters(ctx context.Context, q querier, eventID string, voters []string) error {
	for i, name := range voters {
		_, err := q.ExecContext(ctx, s.rebind(`
			INSERT INTO event_voter (event_id, voter_key, name, position)
			VALUES (?, ?, ?, ?)
		`), eventID, strings.ToLower(name), name, i)
		if err != nil {
			return fmt.Errorf("failed to insert voter: %w", err)
		}
	}
	return nil
}

func scanEvent(row rowScanner) (models.Event, error) {
	var ev models.Event
	var menuJSON string
	err := row.Scan(&ev.ID, &ev.Topic, &ev.CreatorName, &ev.Date, &ev.Time,
		&ev.Location, &ev.Status, &menuJSON, &ev.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, err
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to scan event: %w", err)
	}

	if err := json.Unmarshal([]byte(menuJSON), &ev.MenuData); err != nil {
		return models.Event{}, fmt.Errorf("failed to decode menu of event %s: %w", ev.ID, err)
	}
	ev.AllowedVoters = []string{}
	return ev, nil
}

// Votes

func (s *SQLStore) UpsertVote(ctx context.Context, eventID, sheetName, voterKey string, vote models.Vote) (bool, error) {
	selJSON, err := json.Marshal(vote.Selections)
	if err != nil {
		return false, fmt.Errorf("failed to encode selections: %w", err)
	}
	submittedAt := vote.Timestamp.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	err = tx.QueryRowContext(ctx, s.rebind(`
		SELECT seq FROM vote
		WHERE event_id = ? AND sheet_name = ? AND voter_key = ?
	`), eventID, sheetName, voterKey).Scan(&seq)

	created := errors.Is(err, sql.ErrNoRows)
	if err != nil && !created {
		return false, fmt.Errorf("failed to look up vote: %w", err)
	}

	if created {
		err = tx.QueryRowContext(ctx, s.rebind(`
			SELECT COALESCE(MAX(seq), 0) + 1 FROM vote
			WHERE event_id = ? AND sheet_name = ?
		`), eventID, sheetName).Scan(&seq)
		if err != nil {
			return false, fmt.Errorf("failed to allocate vote position: %w", err)
		}

		_, err = tx.ExecContext(ctx, s.rebind(`
			INSERT INTO vote (event_id, sheet_name, voter_key, voter_name, selections, seq, submitted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`), eventID, sheetName, voterKey, vote.VoterName, string(selJSON), seq, submittedAt)
		if err != nil {
			return false, fmt.Errorf("failed to insert vote: %w", err)
		}
	} else {
		_, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE vote
			SET voter_name = ?, selections = ?, submitted_at = ?
			WHERE event_id = ? AND sheet_name = ? AND voter_key = ?
		`), vote.VoterName, string(selJSON), submittedAt, eventID, sheetName, voterKey)
		if err != nil {
			return false, fmt.Errorf("failed to update vote: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit vote: %w", err)
	}
	return created, nil
}

func (s *SQLStore) ListVotes(ctx context.Context, eventID, sheetName string) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT voter_name, selections, submitted_at
		FROM vote
		WHERE event_id = ? AND sheet_name = ?
		ORDER BY seq, submitted_at
	`), eventID, sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		vote, err := scanVote(rows)
		if err != nil {
			return nil, err
		}
		votes = append(votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}
	return votes, nil
}

func (s *SQLStore) ListVoterVotes(ctx context.Context, eventID, voterKey string) (map[string]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT sheet_name, voter_name, selections, submitted_at
		FROM vote
		WHERE event_id = ? AND voter_key = ?
	`), eventID, voterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query voter votes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]models.Vote)
	for rows.Next() {
		var sheet, name, selJSON string
		var submittedAt time.Time
		if err := rows.Scan(&sheet, &name, &selJSON, &submittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		vote := models.Vote{VoterName: name, Timestamp: submittedAt}
		if err := json.Unmarshal([]byte(selJSON), &vote.Selections); err != nil {
			return nil, fmt.Errorf("failed to decode selections: %w", err)
		}
		out[sheet] = vote
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read voter votes: %w", err)
	}
	return out, nil
}

func (s *SQLStore) ClearVotes(ctx context.Context, eventID string) error {
	if _, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM vote WHERE event_id = ?`), eventID); err != nil {
		return fmt.Errorf("failed to clear votes: %w", err)
	}
	return nil
}

func (s *SQLStore) ClearAllVotes(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM vote`); err != nil {
		return fmt.Errorf("failed to clear votes: %w", err)
	}
	return nil
}

func scanVote(row rowScanner) (models.Vote, error) {
	var vote models.Vote
	var selJSON string
	if err := row.Scan(&vote.VoterName, &selJSON, &vote.Timestamp); err != nil {
		return models.Vote{}, fmt.Errorf("failed to scan vote: %w", err)
	}
	if err := json.Unmarshal([]byte(selJSON), &vote.Selections); err != nil {
		return models.Vote{}, fmt.Errorf("failed to decode selections: %w", err)
	}
	return vote, nil
}
