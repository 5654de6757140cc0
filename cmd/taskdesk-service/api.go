// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"crypto/ed25519"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskdesk-foundation/taskdesk/lib/clock"
	"github.com/taskdesk-foundation/taskdesk/lib/policy"
	"github.com/taskdesk-foundation/taskdesk/lib/schema"
	"github.com/taskdesk-foundation/taskdesk/lib/session"
	"github.com/taskdesk-foundation/taskdesk/lib/store"
)

// apiServer holds the dependencies of every HTTP handler.
type apiServer struct {
	store      *store.Store
	sessions   *session.Provider
	signingKey ed25519.PrivateKey
	tokenTTL   time.Duration
	clock      clock.Clock
	logger     *slog.Logger
}

// apiConfig configures newAPIServer. All fields are required.
type apiConfig struct {
	Store      *store.Store
	Sessions   *session.Provider
	SigningKey ed25519.PrivateKey
	TokenTTL   time.Duration
	Clock      clock.Clock
	Logger     *slog.Logger
}

func newAPIServer(cfg apiConfig) *apiServer {
	if cfg.Store == nil || cfg.Sessions == nil || cfg.Clock == nil || cfg.Logger == nil {
		panic("apiServer: missing required dependency")
	}
	if len(cfg.SigningKey) != ed25519.PrivateKeySize {
		panic("apiServer: signing key has wrong size")
	}
	if cfg.TokenTTL <= 0 {
		panic("apiServer: TokenTTL must be positive")
	}
	return &apiServer{
		store:      cfg.Store,
		sessions:   cfg.Sessions,
		signingKey: cfg.SigningKey,
		tokenTTL:   cfg.TokenTTL,
		clock:      cfg.Clock,
		logger:     cfg.Logger,
	}
}

// router builds the HTTP routing table. Signup and login are the only
// unauthenticated routes; everything under /api/todos resolves the
// session first.
func (s *apiServer) router() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/signup", s.handleSignup)
	r.Post("/api/login", s.handleLogin)

	r.Route("/api/todos", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Put("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDelete)
	})

	return r
}

// principalKey is the context key holding the authenticated principal.
type principalKey struct{}

// requireSession resolves the principal before any other processing.
// No session means 401, full stop: the request never reaches a
// handler, so existence and permission checks cannot leak anything to
// anonymous callers.
func (s *apiServer) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := s.sessions.Principal(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), principalKey{}, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// principalFrom returns the principal requireSession stored.
func principalFrom(r *http.Request) schema.Principal {
	return r.Context().Value(principalKey{}).(schema.Principal)
}

// handleList serves GET /api/todos. Managers and admins see every
// todo with owner display info attached; users see only their own.
func (s *apiServer) handleList(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)

	// CanView with isOwner=false asks whether the role may see todos
	// it does not own. Roles that may not are scoped to their own.
	filter := store.TodoFilter{}
	if !policy.CanView(principal.Role, false).Allowed() {
		filter.OwnerID = principal.ID
	}

	items, err := s.store.ListTodos(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// handleCreate serves POST /api/todos. The created todo always starts
// in draft status owned by the caller; the request body cannot say
// otherwise.
func (s *apiServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)

	var request schema.CreateTodoRequest
	if err := decodeJSON(r, &request); err != nil {
		s.writeError(w, err)
		return
	}

	if result := policy.CanCreate(principal.Role); !result.Allowed() {
		s.writeError(w, forbidden(result.Reason))
		return
	}
	if request.Title == "" {
		s.writeError(w, validationError("title must not be empty"))
		return
	}

	item, err := s.store.CreateTodo(r.Context(), principal.ID, request.Title, request.Description)
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// handleUpdate serves PUT /api/todos/{id}. Existence is checked before
// authorization: a missing id is 404 for everyone, even callers whose
// role would have been denied. Load, decision, and write share one
// transaction so the authorized snapshot is the row that gets written.
func (s *apiServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	id := chi.URLParam(r, "id")

	var request schema.UpdateTodoRequest
	if err := decodeJSON(r, &request); err != nil {
		s.writeError(w, err)
		return
	}

	var updated *schema.TodoItem
	err := s.store.Mutate(r.Context(), func(tx *store.Tx) error {
		item, err := tx.TodoByID(id)
		if err != nil {
			return err
		}

		if result := policy.CanUpdate(principal.Role, item.OwnedBy(principal)); !result.Allowed() {
			return forbidden(result.Reason)
		}

		if !policy.ValidStatus(request.Status) {
			return validationError("status must be draft, in_progress, or completed")
		}
		status := policy.Status(request.Status)
		if request.Title == "" {
			return validationError("title must not be empty")
		}

		updated, err = tx.UpdateTodo(id, request.Title, request.Description, status)
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// handleDelete serves DELETE /api/todos/{id}. Same ordering contract
// as update: 404 before any permission check. The status consulted by
// the policy is read in the same transaction that deletes the row, so
// a concurrent status change cannot slip a delete past the draft rule.
func (s *apiServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	id := chi.URLParam(r, "id")

	err := s.store.Mutate(r.Context(), func(tx *store.Tx) error {
		item, err := tx.TodoByID(id)
		if err != nil {
			return err
		}

		result := policy.CanDelete(principal.Role, item.OwnedBy(principal), item.Status)
		if !result.Allowed() {
			return forbidden(result.Reason)
		}

		return tx.DeleteTodo(id)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
