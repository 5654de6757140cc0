// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package store is Taskdesk's durable resource store: user accounts
// and todo items in SQLite, via the sqlitepool package.
//
// Reads and creates take a connection per call. Mutations of existing
// todos go through [Store.Mutate], which runs the caller's function
// inside a single IMMEDIATE transaction. The gateway loads the todo,
// evaluates policy, and applies the effect inside one Mutate call, so
// the status a delete decision was based on cannot change between the
// read and the write.
//
// Todo timestamps come from the injected clock and are stored as Unix
// seconds. Row identity is a UUID string assigned at creation; the
// owner_id column references users(id) and the database enforces the
// reference.
package store
