// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/menu-vote/middleware"
	"github.com/danielhkuo/menu-vote/models"
	"github.com/danielhkuo/menu-vote/voting"
)

type EventHandler struct {
	svc *voting.Service
}

func NewEventHandler(svc *voting.Service) *EventHandler {
	return &EventHandler{svc: svc}
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListEvents(r.Context())
	if err != nil {
		writeServiceError(w, err, "list events")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, events)
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ev, err := h.svc.CreateEvent(r.Context(), req.Topic, req.CreatorName)
	if err != nil {
		writeServiceError(w, err, "create event")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.EventResponse{
		Success: true,
		Event:   ev,
	})
}

// GetEvent handles GET /api/events/{eventId}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := h.svc.GetEvent(r.Context(), r.PathValue("eventId"))
	if err != nil {
		writeServiceError(w, err, "get event")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ev)
}

// UpdateEvent handles PUT /api/events/{eventId}
// Only the fields present in the body are changed.
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ev, err := h.svc.UpdateEventDetails(r.Context(), r.PathValue("eventId"), req)
	if err != nil {
		writeServiceError(w, err, "update event")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.EventResponse{
		Success: true,
		Event:   ev,
	})
}

// SetStatus handles PUT /api/events/{eventId}/status
func (h *EventHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req models.SetStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ev, err := h.svc.SetStatus(r.Context(), r.PathValue("eventId"), req.Status)
	if err != nil {
		writeServiceError(w, err, "set event status")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		Success: true,
		Status:  ev.Status,
	})
}

// DeleteEvent handles DELETE /api/events/{eventId}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteEvent(r.Context(), r.PathValue("eventId")); err != nil {
		writeServiceError(w, err, "delete event")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Success: true})
}

// SaveMenu handles PUT /api/events/{eventId}/menu
func (h *EventHandler) SaveMenu(w http.ResponseWriter, r *http.Request) {
	var req models.SaveMenuRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.MenuData == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "menuData is required")
		return
	}

	menu, err := h.svc.SaveMenu(r.Context(), r.PathValue("eventId"), *req.MenuData)
	if err != nil {
		writeServiceError(w, err, "save menu")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MenuResponse{
		Success:  true,
		MenuData: menu,
	})
}

// AddVoter handles POST /api/events/{eventId}/voters
func (h *EventHandler) AddVoter(w http.ResponseWriter, r *http.Request) {
	var req models.AddVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voters, err := h.svc.AddVoter(r.Context(), r.PathValue("eventId"), req.Name)
	if err != nil {
		writeServiceError(w, err, "add voter")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VotersResponse{
		Success: true,
		Voters:  voters,
	})
}

// RemoveVoter handles DELETE /api/events/{eventId}/voters/{name}
func (h *EventHandler) RemoveVoter(w http.ResponseWriter, r *http.Request) {
	voters, err := h.svc.RemoveVoter(r.Context(), r.PathValue("eventId"), r.PathValue("name"))
	if err != nil {
		writeServiceError(w, err, "remove voter")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VotersResponse{
		Success: true,
		Voters:  voters,
	})
}
