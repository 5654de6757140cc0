// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"time"

	"github.com/taskdesk-foundation/taskdesk/lib/policy"
)

// Principal is the authenticated actor behind a request: an opaque
// identifier plus a role. The role is fixed for the duration of a
// request: it is resolved once by the session provider and never
// re-read.
type Principal struct {
	// ID is the principal's opaque identifier. Ownership of a todo is
	// decided by value equality between this ID and the todo's
	// OwnerID.
	ID string `json:"id" cbor:"id"`

	// Role is the principal's privilege level. Defaults to
	// policy.RoleUser when the session carries no explicit role.
	Role policy.Role `json:"role" cbor:"role"`
}

// User is a stored account. Every self-service signup produces a user
// with role "user"; manager and admin roles are provisioned out of
// band (directly in the database by an operator).
type User struct {
	ID        string      `json:"id" cbor:"id"`
	Email     string      `json:"email" cbor:"email"`
	Name      string      `json:"name" cbor:"name"`
	Role      policy.Role `json:"role" cbor:"role"`
	CreatedAt time.Time   `json:"created_at" cbor:"created_at"`

	// PasswordHash is the encoded argon2id hash. Never serialized.
	PasswordHash string `json:"-" cbor:"-"`
}

// Principal returns the principal this user acts as.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Role: u.Role}
}

// OwnerInfo is the display information attached to todos in
// manager/admin listings. Users listing their own todos do not
// receive it (they are the owner).
type OwnerInfo struct {
	Name  string `json:"name" cbor:"name"`
	Email string `json:"email" cbor:"email"`
}

// TodoItem is a stored todo. ID and OwnerID are set at creation and
// never change; Title, Description, and Status are mutable only
// through an authorized update.
type TodoItem struct {
	ID          string        `json:"id" cbor:"id"`
	Title       string        `json:"title" cbor:"title"`
	Description string        `json:"description,omitempty" cbor:"description,omitempty"`
	Status      policy.Status `json:"status" cbor:"status"`
	OwnerID     string        `json:"owner_id" cbor:"owner_id"`
	CreatedAt   time.Time     `json:"created_at" cbor:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" cbor:"updated_at"`

	// Owner is display info about the owning user. Populated only on
	// manager/admin listings; nil otherwise.
	Owner *OwnerInfo `json:"owner,omitempty" cbor:"owner,omitempty"`
}

// OwnedBy reports whether the given principal owns this todo.
// Ownership is value equality on the identifier, nothing more.
func (t *TodoItem) OwnedBy(p Principal) bool {
	return t.OwnerID == p.ID
}

// CreateTodoRequest is the body of POST /api/todos. There is no
// status field and no owner field: the server forces status=draft and
// owner=caller regardless of what a client might try to send (unknown
// JSON fields are ignored on decode).
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTodoRequest is the body of PUT /api/todos/{id}. Only these
// three fields are ever copied onto the stored todo; id and owner_id
// in a request body are ignored.
type UpdateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// SignupRequest is the body of POST /api/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful POST /api/login. Token is
// the base64-encoded signed session token to present as
// "Authorization: Bearer <token>".
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
