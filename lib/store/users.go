// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/taskdesk-foundation/taskdesk/lib/policy"
	"github.com/taskdesk-foundation/taskdesk/lib/schema"
)

// NewUser holds the fields for creating an account. Role defaults to
// policy.RoleUser when empty; only operator tooling ever sets it.
// The signup handler always leaves it blank.
type NewUser struct {
	Email        string
	Name         string
	PasswordHash string
	Role         policy.Role
}

// CreateUser inserts an account and returns the stored record.
// Returns ErrEmailTaken when the email is already registered.
func (s *Store) CreateUser(ctx context.Context, u NewUser) (*schema.User, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: create user: %w", err)
	}
	defer s.pool.Put(conn)

	role := u.Role
	if role == "" {
		role = policy.RoleUser
	}

	user := &schema.User{
		ID:           uuid.NewString(),
		Email:        u.Email,
		Name:         u.Name,
		Role:         role,
		CreatedAt:    s.clock.Now().UTC().Truncate(time.Second),
		PasswordHash: u.PasswordHash,
	}

	err = sqlitex.Execute(conn,
		`INSERT INTO users (id, email, name, role, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				user.ID, user.Email, user.Name, string(user.Role),
				user.PasswordHash, user.CreatedAt.Unix(),
			},
		})
	if err != nil {
		if sqlite.ErrCode(err) == sqlite.ResultConstraintUnique {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("store: create user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// UserByEmail loads an account by email. Returns ErrNotFound when no
// account has that email.
func (s *Store) UserByEmail(ctx context.Context, email string) (*schema.User, error) {
	return s.userBy(ctx, "email = ?", email)
}

// UserByID loads an account by id. Returns ErrNotFound when absent.
func (s *Store) UserByID(ctx context.Context, id string) (*schema.User, error) {
	return s.userBy(ctx, "id = ?", id)
}

// ListUsers returns every account, oldest first. Only the admin
// export path uses this; the HTTP API never lists accounts.
func (s *Store) ListUsers(ctx context.Context) ([]schema.User, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list users: %w", err)
	}
	defer s.pool.Put(conn)

	users := []schema.User{}
	err = sqlitex.Execute(conn,
		`SELECT id, email, name, role, created_at FROM users ORDER BY created_at, id`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				users = append(users, schema.User{
					ID:        stmt.ColumnText(0),
					Email:     stmt.ColumnText(1),
					Name:      stmt.ColumnText(2),
					Role:      policy.ParseRole(stmt.ColumnText(3)),
					CreatedAt: time.Unix(stmt.ColumnInt64(4), 0).UTC(),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("store: list users: %w", err)
	}
	return users, nil
}

func (s *Store) userBy(ctx context.Context, where string, arg any) (*schema.User, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: load user: %w", err)
	}
	defer s.pool.Put(conn)

	var user *schema.User
	query := `SELECT id, email, name, role, password_hash, created_at FROM users WHERE ` + where
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []any{arg},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			user = &schema.User{
				ID:           stmt.ColumnText(0),
				Email:        stmt.ColumnText(1),
				Name:         stmt.ColumnText(2),
				Role:         policy.ParseRole(stmt.ColumnText(3)),
				PasswordHash: stmt.ColumnText(4),
				CreatedAt:    time.Unix(stmt.ColumnInt64(5), 0).UTC(),
			}
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: load user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
