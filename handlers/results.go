// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/menu-vote/middleware"
	"github.com/danielhkuo/menu-vote/models"
	"github.com/danielhkuo/menu-vote/voting"
)

type ResultsHandler struct {
	svc *voting.Service
}

func NewResultsHandler(svc *voting.Service) *ResultsHandler {
	return &ResultsHandler{svc: svc}
}

// GetResults handles GET /api/results/{eventId}?sheet=
// Results are live; they are not sealed while the event is open.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	sheet := r.URL.Query().Get("sheet")
	if sheet == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sheet query parameter is required")
		return
	}

	results, err := h.svc.Results(r.Context(), r.PathValue("eventId"), sheet)
	if err != nil {
		writeServiceError(w, err, "compute results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// ClearEventVotes handles DELETE /api/events/{eventId}/votes
func (h *ResultsHandler) ClearEventVotes(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearVotes(r.Context(), r.PathValue("eventId")); err != nil {
		writeServiceError(w, err, "clear event votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "All votes for this event have been cleared",
	})
}

// ClearAllVotes handles DELETE /api/votes
func (h *ResultsHandler) ClearAllVotes(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearAllVotes(r.Context()); err != nil {
		writeServiceError(w, err, "clear all votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "All votes have been cleared",
	})
}
