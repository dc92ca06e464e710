// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/menu-vote/middleware"
	"github.com/danielhkuo/menu-vote/voting"
)

// writeServiceError maps a voting error onto an HTTP response. Anything
// outside the voting taxonomy is a storage failure and is logged.
func writeServiceError(w http.ResponseWriter, err error, action string) {
	var verr *voting.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.ValidationErrorResponse(w, "Validation failed", verr.Violations)
	case errors.Is(err, voting.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, voting.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, voting.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, voting.ErrInvalidInput):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
