// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/menu-vote/cliparse"
	"github.com/danielhkuo/menu-vote/db"
	"github.com/danielhkuo/menu-vote/models"
	"github.com/danielhkuo/menu-vote/store"
	"github.com/danielhkuo/menu-vote/voting"
)

// SetupTestDB opens a private in-memory sqlite database with the full schema.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestService builds a voting service over a fresh sqlite store
func SetupTestService(t *testing.T) *voting.Service {
	t.Helper()

	st := store.NewSQLStore(SetupTestDB(t), store.DialectSQLite)
	return voting.NewService(st, st)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3000,
		DatabaseType:  db.TypeSQLite,
		DatabaseURL:   ":memory:",
		VoteRateLimit: 1000,
		VoteRateBurst: 1000,
	}
}

// TestMenu returns a two-sheet lunch menu:
//
//	Lunch:  Main (quota 1: Pad Thai, Green Curry, Fried Rice), Drinks (quota 2: Tea, Coffee, Water)
//	Dinner: Dessert (quota 1: Mango Sticky Rice, Ice Cream)
func TestMenu() models.Menu {
	return models.Menu{
		{
			Name: "Lunch",
			Categories: []models.Category{
				{Name: "Main", Quota: 1, Items: []string{"Pad Thai", "Green Curry", "Fried Rice"}},
				{Name: "Drinks", Quota: 2, Items: []string{"Tea", "Coffee", "Water"}},
			},
		},
		{
			Name: "Dinner",
			Categories: []models.Category{
				{Name: "Dessert", Quota: 1, Items: []string{"Mango Sticky Rice", "Ice Cream"}},
			},
		},
	}
}

// CreateTestEvent creates an open event with TestMenu and the given voters
func CreateTestEvent(t *testing.T, svc *voting.Service, voters ...string) models.Event {
	t.Helper()
	ctx := context.Background()

	ev, err := svc.CreateEvent(ctx, "Team Lunch", "TestUser")
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}
	if _, err := svc.SaveMenu(ctx, ev.ID, TestMenu()); err != nil {
		t.Fatalf("Failed to save test menu: %v", err)
	}
	for _, name := range voters {
		if _, err := svc.AddVoter(ctx, ev.ID, name); err != nil {
			t.Fatalf("Failed to add test voter %s: %v", name, err)
		}
	}

	ev, err = svc.GetEvent(ctx, ev.ID)
	if err != nil {
		t.Fatalf("Failed to reload test event: %v", err)
	}
	return ev
}

// SubmitTestVote records a vote on the Lunch sheet
func SubmitTestVote(t *testing.T, svc *voting.Service, eventID, voter string, selections map[string][]string) {
	t.Helper()

	if _, err := svc.SubmitVote(context.Background(), eventID, "Lunch", voter, selections); err != nil {
		t.Fatalf("Failed to submit test vote for %s: %v", voter, err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
