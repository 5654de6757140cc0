// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskdesk-foundation/taskdesk/lib/policy"
	"github.com/taskdesk-foundation/taskdesk/lib/service"
)

// startAdmin runs the admin socket for a test API and waits for it to
// accept connections.
func startAdmin(t *testing.T, ta *testAPI) string {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "admin.sock")
	admin := newAdminServer(ta.store, ta.clock, slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- admin.serve(ctx, socketPath) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("admin serve: %v", err)
		}
	})

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.Dial("unix", socketPath)
		if err == nil {
			conn.Close()
			return socketPath
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("admin socket never became reachable")
	return ""
}

func TestAdminStatus(t *testing.T) {
	ta := newTestAPI(t)
	_, token := ta.user(t, "alice@example.com", policy.RoleUser)
	ta.createTodo(t, token, "one")
	ta.createTodo(t, token, "two")

	socketPath := startAdmin(t, ta)
	ta.clock.Advance(90 * time.Second)

	var status statusResult
	err := service.Call(context.Background(), socketPath,
		map[string]string{"action": "status"}, &status)
	if err != nil {
		t.Fatalf("status call: %v", err)
	}
	if status.Todos != 2 || status.Users != 1 {
		t.Errorf("counts = %d todos / %d users, want 2 / 1", status.Todos, status.Users)
	}
	if status.UptimeSeconds != 90 {
		t.Errorf("uptime = %d, want 90", status.UptimeSeconds)
	}
	if status.Version == "" {
		t.Error("no version in status")
	}
}

func TestAdminExport(t *testing.T) {
	ta := newTestAPI(t)
	alice, token := ta.user(t, "alice@example.com", policy.RoleUser)
	item := ta.createTodo(t, token, "exported")

	socketPath := startAdmin(t, ta)

	var export exportResult
	err := service.Call(context.Background(), socketPath,
		map[string]string{"action": "export"}, &export)
	if err != nil {
		t.Fatalf("export call: %v", err)
	}
	if len(export.Users) != 1 || export.Users[0].ID != alice.ID {
		t.Fatalf("users = %+v", export.Users)
	}
	if len(export.Todos) != 1 || export.Todos[0].ID != item.ID {
		t.Fatalf("todos = %+v", export.Todos)
	}
	if export.Todos[0].Owner == nil || export.Todos[0].Owner.Email != "alice@example.com" {
		t.Errorf("export missing owner info: %+v", export.Todos[0])
	}
}

// Exported todos go through the same schema as the HTTP API, so a
// delete visible over HTTP is visible to the next export.
func TestAdminExport_TracksDeletes(t *testing.T) {
	ta := newTestAPI(t)
	_, token := ta.user(t, "alice@example.com", policy.RoleUser)
	item := ta.createTodo(t, token, "doomed")
	socketPath := startAdmin(t, ta)

	recorder := ta.do(t, http.MethodDelete, "/api/todos/"+item.ID, token, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("delete: %d", recorder.Code)
	}

	var export exportResult
	if err := service.Call(context.Background(), socketPath,
		map[string]string{"action": "export"}, &export); err != nil {
		t.Fatalf("export call: %v", err)
	}
	if len(export.Todos) != 0 {
		t.Errorf("todos = %+v, want empty", export.Todos)
	}
}
