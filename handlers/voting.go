// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/menu-vote/middleware"
	"github.com/danielhkuo/menu-vote/models"
	"github.com/danielhkuo/menu-vote/voting"
)

type VotingHandler struct {
	svc *voting.Service
}

func NewVotingHandler(svc *voting.Service) *VotingHandler {
	return &VotingHandler{svc: svc}
}

// SubmitVote handles POST /api/vote
// A voter resubmitting on the same sheet replaces the earlier vote.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.EventID == "" || req.SheetName == "" || req.VoterName == "" || req.Selections == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing required voting parameters")
		return
	}

	created, err := h.svc.SubmitVote(r.Context(), req.EventID, req.SheetName, req.VoterName, req.Selections)
	if err != nil {
		writeServiceError(w, err, "submit vote")
		return
	}

	status := http.StatusCreated
	message := "Vote submitted successfully"
	if !created {
		status = http.StatusOK
		message = "Vote updated successfully"
	}

	middleware.JSONResponse(w, status, models.MessageResponse{
		Success: true,
		Message: message,
	})
}

// GetVoterVotes handles GET /api/votes/{eventId}/{name}
// Returns the voter's selections per sheet, used to pre-fill the voting form.
func (h *VotingHandler) GetVoterVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := h.svc.VoterVotes(r.Context(), r.PathValue("eventId"), r.PathValue("name"))
	if err != nil {
		writeServiceError(w, err, "load voter votes")
		return
	}

	resp := models.VoterVotesResponse{
		Success:      true,
		Votes:        make(map[string]map[string][]string, len(votes)),
		SubmittedAt:  make(map[string]time.Time, len(votes)),
		SubmittedAgo: make(map[string]string, len(votes)),
	}
	for sheet, vote := range votes {
		resp.Votes[sheet] = vote.Selections
		resp.SubmittedAt[sheet] = vote.Timestamp
		resp.SubmittedAgo[sheet] = humanize.Time(vote.Timestamp)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
