// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/samber/oops"

	"github.com/boardkeep/boardkeep/internal/auth"
	"github.com/boardkeep/boardkeep/internal/board"
	"github.com/boardkeep/boardkeep/pkg/errutil"
)

// errInvalidID is wrapped around malformed path identifiers.
var errInvalidID = errors.New("invalid id")

// errorResponse is the uniform failure body.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes v as a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps a service error to an HTTP status and body. Unexpected
// failures are logged in full and surfaced as a generic internal error so
// nothing leaks to the client.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)

	body := errorResponse{Error: err.Error()}
	if oopsErr, ok := oops.AsOops(err); ok {
		if code, ok := oopsErr.Code().(string); ok {
			body.Code = code
		}
	}

	if status == http.StatusInternalServerError {
		errutil.LogError(s.logger, "request failed", err)
		body.Error = "internal server error"
		body.Code = "INTERNAL"
	}

	s.writeJSON(w, status, body)
}

// statusForError maps the error taxonomy to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrNotFound),
		errors.Is(err, board.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, board.ErrForbidden),
		errors.Is(err, auth.ErrAccountLocked):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrDuplicateEmail),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrValidation),
		errors.Is(err, board.ErrValidation),
		errors.Is(err, errInvalidID),
		errors.Is(err, errBadRequestBody):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
