package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/menu-vote/models"
	"github.com/danielhkuo/menu-vote/testutil"
)

func TestSubmitVote(t *testing.T) {
	svc := testutil.SetupTestService(t)
	handler := NewVotingHandler(svc)
	ev := testutil.CreateTestEvent(t, svc, "Alice", "Bob")

	closed := testutil.CreateTestEvent(t, svc, "Alice")
	if _, err := svc.SetStatus(t.Context(), closed.ID, models.StatusClosed); err != nil {
		t.Fatalf("Failed to close event: %v", err)
	}

	valid := map[string][]string{"Main": {"Pad Thai"}, "Drinks": {"Tea", "Coffee"}}

	tests := []struct {
		name           string
		request        models.SubmitVoteRequest
		expectedStatus int
		expectedCodes  []string
	}{
		{
			name:           "valid vote",
			request:        models.SubmitVoteRequest{EventID: ev.ID, SheetName: "Lunch", VoterName: "Alice", Selections: valid},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "resubmission replaces",
			request:        models.SubmitVoteRequest{EventID: ev.ID, SheetName: "Lunch", VoterName: "alice", Selections: valid},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing parameters",
			request:        models.SubmitVoteRequest{EventID: ev.ID, VoterName: "Bob", Selections: valid},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown event",
			request:        models.SubmitVoteRequest{EventID: "missing", SheetName: "Lunch", VoterName: "Bob", Selections: valid},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown sheet",
			request:        models.SubmitVoteRequest{EventID: ev.ID, SheetName: "Breakfast", VoterName: "Bob", Selections: valid},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "voter not on allow-list",
			request:        models.SubmitVoteRequest{EventID: ev.ID, SheetName: "Lunch", VoterName: "Mallory", Selections: valid},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "closed event",
			request:        models.SubmitVoteRequest{EventID: closed.ID, SheetName: "Lunch", VoterName: "Alice", Selections: valid},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "over quota",
			request: models.SubmitVoteRequest{EventID: ev.ID, SheetName: "Lunch", VoterName: "Bob",
				Selections: map[string][]string{"Main": {"Pad Thai", "Green Curry"}, "Drinks": {"Tea"}}},
			expectedStatus: http.StatusBadRequest,
			expectedCodes:  []string{"quota_violation"},
		},
		{
			name: "incomplete and unknown item",
			request: models.SubmitVoteRequest{EventID: ev.ID, SheetName: "Lunch", VoterName: "Bob",
				Selections: map[string][]string{"Main": {"Burger"}}},
			expectedStatus: http.StatusBadRequest,
			expectedCodes:  []string{"unknown_item", "incomplete_selection"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.request)
			req := httptest.NewRequest("POST", "/api/vote", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.SubmitVote(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if len(tt.expectedCodes) > 0 {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if len(resp.Violations) != len(tt.expectedCodes) {
					t.Fatalf("Expected %d violations, got %+v", len(tt.expectedCodes), resp.Violations)
				}
				for i, code := range tt.expectedCodes {
					if resp.Violations[i].Code != code {
						t.Errorf("violation %d: expected %s, got %s", i, code, resp.Violations[i].Code)
					}
				}
			}
		})
	}

	// Two submissions from Alice, one stored vote
	results, err := svc.Results(t.Context(), ev.ID, "Lunch")
	if err != nil {
		t.Fatalf("Failed to load results: %v", err)
	}
	if results.TotalVotes != 1 {
		t.Errorf("Expected 1 stored vote after resubmission, got %d", results.TotalVotes)
	}
	if results.VotesList[0].VoterName != "alice" {
		t.Errorf("Expected latest display name 'alice', got '%s'", results.VotesList[0].VoterName)
	}
}

func TestGetVoterVotes(t *testing.T) {
	svc := testutil.SetupTestService(t)
	handler := NewVotingHandler(svc)
	ev := testutil.CreateTestEvent(t, svc, "Alice", "Bob")

	testutil.SubmitTestVote(t, svc, ev.ID, "Alice", map[string][]string{"Main": {"Green Curry"}, "Drinks": {"Water"}})
	if _, err := svc.SubmitVote(t.Context(), ev.ID, "Dinner", "Alice", map[string][]string{"Dessert": {"Ice Cream"}}); err != nil {
		t.Fatalf("Failed to submit dinner vote: %v", err)
	}

	t.Run("voter with votes on two sheets", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/votes/"+ev.ID+"/ALICE", nil)
		req.SetPathValue("eventId", ev.ID)
		req.SetPathValue("name", "ALICE")
		w := httptest.NewRecorder()

		handler.GetVoterVotes(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.VoterVotesResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Votes) != 2 {
			t.Fatalf("Expected votes on 2 sheets, got %v", resp.Votes)
		}
		if got := resp.Votes["Lunch"]["Main"]; len(got) != 1 || got[0] != "Green Curry" {
			t.Errorf("Expected Lunch/Main [Green Curry], got %v", got)
		}
		if got := resp.Votes["Dinner"]["Dessert"]; len(got) != 1 || got[0] != "Ice Cream" {
			t.Errorf("Expected Dinner/Dessert [Ice Cream], got %v", got)
		}
		if resp.SubmittedAt["Lunch"].IsZero() {
			t.Error("Expected a submission time for Lunch")
		}
		if resp.SubmittedAgo["Lunch"] == "" {
			t.Error("Expected a relative submission time for Lunch")
		}
	})

	t.Run("voter without votes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/votes/"+ev.ID+"/Bob", nil)
		req.SetPathValue("eventId", ev.ID)
		req.SetPathValue("name", "Bob")
		w := httptest.NewRecorder()

		handler.GetVoterVotes(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.VoterVotesResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Votes) != 0 {
			t.Errorf("Expected no votes, got %v", resp.Votes)
		}
	})
}
