// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool provides Taskdesk's SQLite connection pool. It
// wraps zombiezen.com/go/sqlite with the pragmas the store relies on
// and nothing else: no query builder, no ORM. The store writes SQL
// and manages transactions with sqlitex directly.
//
// Every connection is initialized with:
//
//   - journal_mode=WAL: concurrent readers alongside a single writer.
//   - synchronous=NORMAL: transactions survive a process crash.
//   - foreign_keys=ON: todos reference users; the database enforces
//     the reference so a todo can never point at a deleted account.
//   - busy_timeout=5000: wait for a write lock instead of returning
//     SQLITE_BUSY immediately.
//
// Callers [Pool.Take] a connection, work, and [Pool.Put] it back.
// Connections are not safe for concurrent use; each goroutine holds
// its own for the duration of its work.
package sqlitepool
