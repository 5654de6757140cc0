// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskdesk-foundation/taskdesk/lib/policy"
	"github.com/taskdesk-foundation/taskdesk/lib/schema"
	"github.com/taskdesk-foundation/taskdesk/lib/session"
	"github.com/taskdesk-foundation/taskdesk/lib/store"
)

// apiError is a request failure with a fixed HTTP status. Handlers
// deep inside a store.Mutate closure return these; writeError maps
// them at the boundary.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

var (
	errUnauthenticated = &apiError{http.StatusUnauthorized, "authentication required"}
	errTodoNotFound    = &apiError{http.StatusNotFound, "todo not found"}
	errBadCredentials  = &apiError{http.StatusUnauthorized, "invalid email or password"}
)

// forbidden wraps a policy denial reason as a 403. The reason string
// is the user-visible explanation ("you do not own this todo", ...).
func forbidden(reason policy.DenyReason) *apiError {
	return &apiError{http.StatusForbidden, reason.String()}
}

// validationError is a 400 with a field-specific message.
func validationError(message string) *apiError {
	return &apiError{http.StatusBadRequest, message}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its terminal JSON response. Every
// failure leaves through here; nothing propagates past the handler.
func (s *apiServer) writeError(w http.ResponseWriter, err error) {
	var known *apiError
	switch {
	case errors.As(err, &known):
		respondJSON(w, known.status, schema.ErrorResponse{Error: known.message})
	case errors.Is(err, session.ErrNoSession):
		respondJSON(w, http.StatusUnauthorized, schema.ErrorResponse{Error: errUnauthenticated.message})
	case errors.Is(err, store.ErrNotFound):
		respondJSON(w, http.StatusNotFound, schema.ErrorResponse{Error: errTodoNotFound.message})
	case errors.Is(err, store.ErrEmailTaken):
		respondJSON(w, http.StatusConflict, schema.ErrorResponse{Error: "email already registered"})
	default:
		s.logger.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, schema.ErrorResponse{Error: "internal error"})
	}
}

// decodeJSON reads a request body into v. A malformed body is a
// validation failure, not a server error.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return validationError("invalid request body")
	}
	return nil
}
