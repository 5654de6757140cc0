// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/taskdesk-foundation/taskdesk/lib/clock"
	"github.com/taskdesk-foundation/taskdesk/lib/policy"
	"github.com/taskdesk-foundation/taskdesk/lib/sessiontoken"
)

func setupProvider(t *testing.T) (*Provider, ed25519.PrivateKey, *clock.FakeClock) {
	t.Helper()
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generating keypair: %v", err)
	}
	clk := clock.Fake(time.Unix(1700000000, 0).UTC())
	return NewProvider(public, clk), private, clk
}

func mintHeader(t *testing.T, private ed25519.PrivateKey, token *sessiontoken.Token) string {
	t.Helper()
	raw, err := sessiontoken.Mint(private, token)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	return "Bearer " + base64.StdEncoding.EncodeToString(raw)
}

func TestPrincipal_ValidToken(t *testing.T) {
	provider, private, clk := setupProvider(t)

	r := httptest.NewRequest("GET", "/api/todos", nil)
	r.Header.Set("Authorization", mintHeader(t, private, &sessiontoken.Token{
		Subject:   "u-1",
		Role:      "manager",
		ID:        "tok-1",
		IssuedAt:  clk.Now().Unix(),
		ExpiresAt: clk.Now().Add(time.Hour).Unix(),
	}))

	principal, err := provider.Principal(r)
	if err != nil {
		t.Fatalf("principal: %v", err)
	}
	if principal.ID != "u-1" || principal.Role != policy.RoleManager {
		t.Errorf("principal = %+v", principal)
	}
}

func TestPrincipal_MissingRoleDefaultsToUser(t *testing.T) {
	provider, private, clk := setupProvider(t)

	r := httptest.NewRequest("GET", "/api/todos", nil)
	r.Header.Set("Authorization", mintHeader(t, private, &sessiontoken.Token{
		Subject:   "u-1",
		ID:        "tok-1",
		IssuedAt:  clk.Now().Unix(),
		ExpiresAt: clk.Now().Add(time.Hour).Unix(),
	}))

	principal, err := provider.Principal(r)
	if err != nil {
		t.Fatalf("principal: %v", err)
	}
	if principal.Role != policy.RoleUser {
		t.Errorf("role = %q, want user (low-privilege default)", principal.Role)
	}
}

func TestPrincipal_UnknownRoleDefaultsToUser(t *testing.T) {
	provider, private, clk := setupProvider(t)

	r := httptest.NewRequest("GET", "/api/todos", nil)
	r.Header.Set("Authorization", mintHeader(t, private, &sessiontoken.Token{
		Subject:   "u-1",
		Role:      "root",
		ID:        "tok-1",
		IssuedAt:  clk.Now().Unix(),
		ExpiresAt: clk.Now().Add(time.Hour).Unix(),
	}))

	principal, err := provider.Principal(r)
	if err != nil {
		t.Fatalf("principal: %v", err)
	}
	if principal.Role != policy.RoleUser {
		t.Errorf("role = %q, want user", principal.Role)
	}
}

func TestPrincipal_NoHeader(t *testing.T) {
	provider, _, _ := setupProvider(t)
	r := httptest.NewRequest("GET", "/api/todos", nil)
	if _, err := provider.Principal(r); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
}

func TestPrincipal_NotBearer(t *testing.T) {
	provider, _, _ := setupProvider(t)
	r := httptest.NewRequest("GET", "/api/todos", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if _, err := provider.Principal(r); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
}

func TestPrincipal_GarbageToken(t *testing.T) {
	provider, _, _ := setupProvider(t)
	r := httptest.NewRequest("GET", "/api/todos", nil)
	r.Header.Set("Authorization", "Bearer not!!base64")
	if _, err := provider.Principal(r); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
}

func TestPrincipal_ExpiredToken(t *testing.T) {
	provider, private, clk := setupProvider(t)

	r := httptest.NewRequest("GET", "/api/todos", nil)
	r.Header.Set("Authorization", mintHeader(t, private, &sessiontoken.Token{
		Subject:   "u-1",
		ID:        "tok-1",
		IssuedAt:  clk.Now().Unix(),
		ExpiresAt: clk.Now().Add(time.Hour).Unix(),
	}))

	clk.Advance(2 * time.Hour)
	if _, err := provider.Principal(r); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession after expiry", err)
	}
}

func TestPrincipal_ForeignKeyToken(t *testing.T) {
	provider, _, clk := setupProvider(t)
	_, otherPrivate, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generating other keypair: %v", err)
	}

	r := httptest.NewRequest("GET", "/api/todos", nil)
	r.Header.Set("Authorization", mintHeader(t, otherPrivate, &sessiontoken.Token{
		Subject:   "u-1",
		Role:      "admin",
		ID:        "tok-1",
		IssuedAt:  clk.Now().Unix(),
		ExpiresAt: clk.Now().Add(time.Hour).Unix(),
	}))

	if _, err := provider.Principal(r); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession for token signed with a different key", err)
	}
}
