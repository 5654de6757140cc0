// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/taskdesk-foundation/taskdesk/lib/policy"
	"github.com/taskdesk-foundation/taskdesk/lib/schema"
)

func TestSignup(t *testing.T) {
	ta := newTestAPI(t)

	recorder := ta.do(t, http.MethodPost, "/api/signup", "", schema.SignupRequest{
		Email:    "New@Example.com",
		Name:     "New Person",
		Password: "long enough",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", recorder.Code, recorder.Body.String())
	}
	user := decodeBody[schema.User](t, recorder)
	if user.Role != policy.RoleUser {
		t.Errorf("role = %q, want user", user.Role)
	}
	if user.Email != "new@example.com" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}

	// The password hash must never appear in a response body.
	if body := recorder.Body.String(); strings.Contains(body, "password") || strings.Contains(body, "argon2") {
		t.Errorf("response leaks credential material: %s", body)
	}
}

func TestSignup_Validation(t *testing.T) {
	ta := newTestAPI(t)

	bad := []schema.SignupRequest{
		{Email: "not-an-email", Name: "N", Password: "long enough"},
		{Email: "a@example.com", Name: "", Password: "long enough"},
		{Email: "a@example.com", Name: "N", Password: "short"},
	}
	for _, request := range bad {
		recorder := ta.do(t, http.MethodPost, "/api/signup", "", request)
		if recorder.Code != http.StatusBadRequest {
			t.Errorf("%+v: status %d, want 400", request, recorder.Code)
		}
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	ta := newTestAPI(t)
	request := schema.SignupRequest{
		Email:    "dup@example.com",
		Name:     "First",
		Password: "long enough",
	}

	if recorder := ta.do(t, http.MethodPost, "/api/signup", "", request); recorder.Code != http.StatusCreated {
		t.Fatalf("first signup: %d", recorder.Code)
	}
	recorder := ta.do(t, http.MethodPost, "/api/signup", "", request)
	if recorder.Code != http.StatusConflict {
		t.Errorf("second signup: status %d, want 409", recorder.Code)
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	ta := newTestAPI(t)

	signup := schema.SignupRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "correct horse",
	}
	if recorder := ta.do(t, http.MethodPost, "/api/signup", "", signup); recorder.Code != http.StatusCreated {
		t.Fatalf("signup: %d", recorder.Code)
	}

	recorder := ta.do(t, http.MethodPost, "/api/login", "", schema.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("login: status %d: %s", recorder.Code, recorder.Body.String())
	}
	login := decodeBody[schema.LoginResponse](t, recorder)
	if login.Token == "" {
		t.Fatal("no token in login response")
	}
	if !login.ExpiresAt.After(ta.clock.Now()) {
		t.Errorf("expires_at = %v, not in the future", login.ExpiresAt)
	}

	// The minted token authenticates real requests.
	recorder = ta.do(t, http.MethodGet, "/api/todos", login.Token, nil)
	if recorder.Code != http.StatusOK {
		t.Errorf("list with minted token: status %d", recorder.Code)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	ta := newTestAPI(t)
	signup := schema.SignupRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "correct horse",
	}
	if recorder := ta.do(t, http.MethodPost, "/api/signup", "", signup); recorder.Code != http.StatusCreated {
		t.Fatalf("signup: %d", recorder.Code)
	}

	// Wrong password and unknown email produce the same response.
	wrongPassword := ta.do(t, http.MethodPost, "/api/login", "", schema.LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})
	unknownEmail := ta.do(t, http.MethodPost, "/api/login", "", schema.LoginRequest{
		Email: "nobody@example.com", Password: "correct horse",
	})
	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("codes = %d / %d, want 401 / 401", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Errorf("distinguishable failures: %q vs %q",
			wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}
