// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskdesk-foundation/taskdesk/lib/clock"
	"github.com/taskdesk-foundation/taskdesk/lib/schema"
	"github.com/taskdesk-foundation/taskdesk/lib/service"
	"github.com/taskdesk-foundation/taskdesk/lib/store"
	"github.com/taskdesk-foundation/taskdesk/lib/version"
)

// adminServer answers the CBOR admin protocol on the Unix socket.
// Access control is the socket file's permissions; there is no token
// check on this path.
type adminServer struct {
	store   *store.Store
	clock   clock.Clock
	logger  *slog.Logger
	started time.Time
}

func newAdminServer(st *store.Store, clk clock.Clock, logger *slog.Logger) *adminServer {
	return &adminServer{
		store:   st,
		clock:   clk,
		logger:  logger,
		started: clk.Now(),
	}
}

func (a *adminServer) serve(ctx context.Context, socketPath string) error {
	server := service.NewSocketServer(socketPath, a.logger)
	server.Handle("status", a.handleStatus)
	server.Handle("export", a.handleExport)
	return server.Serve(ctx)
}

// statusResult is the data field of a "status" response.
type statusResult struct {
	Version       string `cbor:"version"`
	UptimeSeconds int64  `cbor:"uptime_seconds"`
	Todos         int    `cbor:"todos"`
	Users         int    `cbor:"users"`
}

func (a *adminServer) handleStatus(ctx context.Context, raw []byte) (any, error) {
	todos, users, err := a.store.Counts(ctx)
	if err != nil {
		return nil, err
	}
	return statusResult{
		Version:       version.Short(),
		UptimeSeconds: int64(a.clock.Now().Sub(a.started).Seconds()),
		Todos:         todos,
		Users:         users,
	}, nil
}

// exportResult is the data field of an "export" response: the full
// contents of the store. Password hashes are excluded at the schema
// level and cannot appear here.
type exportResult struct {
	ExportedAt time.Time         `cbor:"exported_at"`
	Users      []schema.User     `cbor:"users"`
	Todos      []schema.TodoItem `cbor:"todos"`
}

func (a *adminServer) handleExport(ctx context.Context, raw []byte) (any, error) {
	users, err := a.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	todos, err := a.store.ListTodos(ctx, store.TodoFilter{})
	if err != nil {
		return nil, err
	}
	return exportResult{
		ExportedAt: a.clock.Now().UTC().Truncate(time.Second),
		Users:      users,
		Todos:      todos,
	}, nil
}
