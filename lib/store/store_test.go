// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskdesk-foundation/taskdesk/lib/clock"
	"github.com/taskdesk-foundation/taskdesk/lib/policy"
	"github.com/taskdesk-foundation/taskdesk/lib/schema"
)

// openTestStore creates a store on a throwaway database with a fake
// clock frozen at a known instant.
func openTestStore(t *testing.T) (*Store, *clock.FakeClock) {
	t.Helper()
	clk := clock.Fake(time.Unix(1700000000, 0).UTC())
	s, err := Open(Config{
		Path:   filepath.Join(t.TempDir(), "taskdesk.db"),
		Clock:  clk,
		Logger: slog.New(slog.DiscardHandler),
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, clk
}

func createTestUser(t *testing.T, s *Store, email string, role policy.Role) *schema.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), NewUser{
		Email:        email,
		Name:         "Test " + email,
		PasswordHash: "x",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func TestCreateUser_Defaults(t *testing.T) {
	s, clk := openTestStore(t)

	user, err := s.CreateUser(context.Background(), NewUser{
		Email:        "a@example.com",
		Name:         "A",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Role != policy.RoleUser {
		t.Errorf("role = %q, want user", user.Role)
	}
	if user.ID == "" {
		t.Error("no id assigned")
	}
	if !user.CreatedAt.Equal(clk.Now().Truncate(time.Second)) {
		t.Errorf("created_at = %v, want clock time", user.CreatedAt)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s, _ := openTestStore(t)
	createTestUser(t, s, "dup@example.com", "")

	_, err := s.CreateUser(context.Background(), NewUser{
		Email:        "dup@example.com",
		Name:         "Again",
		PasswordHash: "y",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestUserLookup(t *testing.T) {
	s, _ := openTestStore(t)
	created := createTestUser(t, s, "look@example.com", policy.RoleManager)

	byEmail, err := s.UserByEmail(context.Background(), "look@example.com")
	if err != nil {
		t.Fatalf("by email: %v", err)
	}
	if byEmail.ID != created.ID || byEmail.Role != policy.RoleManager {
		t.Errorf("by email = %+v", byEmail)
	}
	if byEmail.PasswordHash != "x" {
		t.Error("password hash not loaded for verification")
	}

	byID, err := s.UserByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if byID.Email != "look@example.com" {
		t.Errorf("by id = %+v", byID)
	}

	if _, err := s.UserByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing email err = %v, want ErrNotFound", err)
	}
	if _, err := s.UserByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id err = %v, want ErrNotFound", err)
	}
}
