// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/taskdesk-foundation/taskdesk/lib/clock"
	"github.com/taskdesk-foundation/taskdesk/lib/sqlitepool"
)

// Errors callers branch on.
var (
	// ErrNotFound means no row matched the given id (or email).
	ErrNotFound = errors.New("store: not found")

	// ErrEmailTaken means an account with that email already exists.
	ErrEmailTaken = errors.New("store: email already registered")
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	name          TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'user',
	password_hash TEXT NOT NULL,
	created_at    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS todos (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'draft',
	owner_id    TEXT NOT NULL REFERENCES users(id),
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_todos_owner ON todos(owner_id);
`

// Config holds the parameters for opening a store.
type Config struct {
	// Path is the SQLite database file. Required.
	Path string

	// PoolSize is the connection pool size. Defaults per sqlitepool.
	PoolSize int

	// Clock supplies todo timestamps. Required.
	Clock clock.Clock

	// Logger receives operational messages. Required.
	Logger *slog.Logger
}

// Store provides durable access to users and todos. Safe for
// concurrent use.
type Store struct {
	pool   *sqlitepool.Pool
	clock  clock.Clock
	logger *slog.Logger
}

// Open creates the store, creating the database file and schema as
// needed. The caller must Close the store when done.
func Open(cfg Config) (*Store, error) {
	if cfg.Clock == nil {
		return nil, fmt.Errorf("store: Clock is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("store: Logger is required")
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     cfg.Path,
		PoolSize: cfg.PoolSize,
		Logger:   cfg.Logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schemaSQL, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	return &Store{pool: pool, clock: cfg.Clock, logger: cfg.Logger}, nil
}

// Close closes the underlying pool.
func (s *Store) Close() error {
	return s.pool.Close()
}

// Tx is a handle to an open IMMEDIATE transaction. All methods operate
// on the transaction's single connection; the transaction commits when
// the Mutate callback returns nil and rolls back when it returns an
// error.
type Tx struct {
	store *Store
	conn  *sqlite.Conn
}

// Mutate runs fn inside one IMMEDIATE transaction. Use it for every
// read-then-write sequence on an existing todo: the row read through
// the Tx cannot be changed or deleted by a concurrent request before
// fn's own writes commit.
func (s *Store) Mutate(ctx context.Context, fn func(tx *Tx) error) (err error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: mutate: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("store: begin transaction: %w", err)
	}
	defer endTransaction(&err)

	return fn(&Tx{store: s, conn: conn})
}

// Counts returns the number of stored todos and users. Used by the
// admin socket's status action.
func (s *Store) Counts(ctx context.Context) (todos, users int, err error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("store: counts: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, "SELECT COUNT(*) FROM todos", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			todos = stmt.ColumnInt(0)
			return nil
		},
	})
	if err != nil {
		return 0, 0, fmt.Errorf("store: counting todos: %w", err)
	}

	err = sqlitex.Execute(conn, "SELECT COUNT(*) FROM users", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			users = stmt.ColumnInt(0)
			return nil
		},
	})
	if err != nil {
		return 0, 0, fmt.Errorf("store: counting users: %w", err)
	}

	return todos, users, nil
}
