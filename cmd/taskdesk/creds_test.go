// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}
	return home
}

func TestCredentials_RoundTrip(t *testing.T) {
	home := setHome(t)

	creds := &credentials{
		Server:    "http://todo.internal:8080",
		Email:     "alice@example.com",
		Token:     "secret-token",
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}
	if err := saveCredentials(creds); err != nil {
		t.Fatalf("save: %v", err)
	}

	// The token is a bearer credential; the file must be owner-only.
	info, err := os.Stat(filepath.Join(home, ".taskdesk", "credentials.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := loadCredentials()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Token != creds.Token || loaded.Server != creds.Server {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestCredentials_MissingAndExpired(t *testing.T) {
	setHome(t)

	if _, err := loadCredentials(); !errors.Is(err, errNoCredentials) {
		t.Errorf("missing: err = %v, want errNoCredentials", err)
	}

	expired := &credentials{
		Server:    "http://localhost:8080",
		Token:     "old",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := saveCredentials(expired); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := loadCredentials(); !errors.Is(err, errNoCredentials) {
		t.Errorf("expired: err = %v, want errNoCredentials", err)
	}
}

func TestCredentials_ClearIsIdempotent(t *testing.T) {
	setHome(t)

	if err := clearCredentials(); err != nil {
		t.Fatalf("clear with nothing cached: %v", err)
	}

	creds := &credentials{
		Server:    "http://localhost:8080",
		Token:     "x",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := saveCredentials(creds); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := clearCredentials(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := loadCredentials(); !errors.Is(err, errNoCredentials) {
		t.Errorf("after clear: err = %v, want errNoCredentials", err)
	}
}
