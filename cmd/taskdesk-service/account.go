// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskdesk-foundation/taskdesk/lib/schema"
	"github.com/taskdesk-foundation/taskdesk/lib/session"
	"github.com/taskdesk-foundation/taskdesk/lib/sessiontoken"
	"github.com/taskdesk-foundation/taskdesk/lib/store"
)

// minPasswordLength applies at signup only. Existing accounts are
// never re-validated against it.
const minPasswordLength = 8

// handleSignup serves POST /api/signup. Every self-service account
// gets role "user"; elevated roles are provisioned by an operator
// directly in the database.
func (s *apiServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var request schema.SignupRequest
	if err := decodeJSON(r, &request); err != nil {
		s.writeError(w, err)
		return
	}

	switch {
	case !strings.Contains(request.Email, "@"):
		s.writeError(w, validationError("a valid email address is required"))
		return
	case request.Name == "":
		s.writeError(w, validationError("name must not be empty"))
		return
	case len(request.Password) < minPasswordLength:
		s.writeError(w, validationError("password must be at least 8 characters"))
		return
	}

	hash, err := session.HashPassword(request.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	user, err := s.store.CreateUser(r.Context(), store.NewUser{
		Email:        strings.ToLower(request.Email),
		Name:         request.Name,
		PasswordHash: hash,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// handleLogin serves POST /api/login. An unknown email and a wrong
// password produce the same 401: the response never confirms whether
// an account exists.
func (s *apiServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var request schema.LoginRequest
	if err := decodeJSON(r, &request); err != nil {
		s.writeError(w, err)
		return
	}

	user, err := s.store.UserByEmail(r.Context(), strings.ToLower(request.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, errBadCredentials)
			return
		}
		s.writeError(w, err)
		return
	}

	if err := session.VerifyPassword(user.PasswordHash, request.Password); err != nil {
		if errors.Is(err, session.ErrHashMismatch) {
			s.writeError(w, errBadCredentials)
			return
		}
		s.writeError(w, err)
		return
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.tokenTTL)
	raw, err := sessiontoken.Mint(s.signingKey, &sessiontoken.Token{
		Subject:   user.ID,
		Role:      string(user.Role),
		ID:        uuid.NewString(),
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("login", "user_id", user.ID, "role", user.Role)
	respondJSON(w, http.StatusOK, schema.LoginResponse{
		Token:     base64.StdEncoding.EncodeToString(raw),
		ExpiresAt: expiresAt.UTC().Truncate(time.Second),
		User:      *user,
	})
}
