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

// TodoFilter narrows ListTodos. The zero value lists everything.
type TodoFilter struct {
	// OwnerID restricts the listing to one owner's todos when
	// non-empty.
	OwnerID string
}

// CreateTodo inserts a todo owned by ownerID. Status is always draft
// and the id is always freshly assigned; there is no way for a
// caller to supply either.
func (s *Store) CreateTodo(ctx context.Context, ownerID, title, description string) (*schema.TodoItem, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: create todo: %w", err)
	}
	defer s.pool.Put(conn)

	now := s.clock.Now().UTC().Truncate(time.Second)
	item := &schema.TodoItem{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      policy.StatusDraft,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = sqlitex.Execute(conn,
		`INSERT INTO todos (id, title, description, status, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				item.ID, item.Title, item.Description, string(item.Status),
				item.OwnerID, item.CreatedAt.Unix(), item.UpdatedAt.Unix(),
			},
		})
	if err != nil {
		return nil, fmt.Errorf("store: create todo: %w", err)
	}

	s.logger.Info("todo created", "todo_id", item.ID, "owner_id", ownerID)
	return item, nil
}

// TodoByID loads one todo. Returns ErrNotFound when absent.
func (s *Store) TodoByID(ctx context.Context, id string) (*schema.TodoItem, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: load todo: %w", err)
	}
	defer s.pool.Put(conn)

	return todoByID(conn, id)
}

// ListTodos returns todos matching the filter, newest first. An
// unfiltered listing joins in each owner's display info (name and
// email) for manager/admin views; a filtered listing belongs to the
// owner and carries no Owner field.
func (s *Store) ListTodos(ctx context.Context, filter TodoFilter) ([]schema.TodoItem, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list todos: %w", err)
	}
	defer s.pool.Put(conn)

	items := []schema.TodoItem{}

	if filter.OwnerID != "" {
		err = sqlitex.Execute(conn,
			`SELECT id, title, description, status, owner_id, created_at, updated_at
			 FROM todos WHERE owner_id = ?
			 ORDER BY created_at DESC, id`,
			&sqlitex.ExecOptions{
				Args: []any{filter.OwnerID},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					items = append(items, scanTodo(stmt))
					return nil
				},
			})
	} else {
		err = sqlitex.Execute(conn,
			`SELECT t.id, t.title, t.description, t.status, t.owner_id, t.created_at, t.updated_at,
			        u.name, u.email
			 FROM todos t JOIN users u ON u.id = t.owner_id
			 ORDER BY t.created_at DESC, t.id`,
			&sqlitex.ExecOptions{
				ResultFunc: func(stmt *sqlite.Stmt) error {
					item := scanTodo(stmt)
					item.Owner = &schema.OwnerInfo{
						Name:  stmt.ColumnText(7),
						Email: stmt.ColumnText(8),
					}
					items = append(items, item)
					return nil
				},
			})
	}
	if err != nil {
		return nil, fmt.Errorf("store: list todos: %w", err)
	}
	return items, nil
}

// TodoByID loads one todo within the transaction. Returns ErrNotFound
// when absent.
func (t *Tx) TodoByID(id string) (*schema.TodoItem, error) {
	return todoByID(t.conn, id)
}

// UpdateTodo overwrites the todo's title, description, and status,
// nothing else. ID and owner are immutable by construction: the
// statement does not touch those columns. Returns the updated todo,
// or ErrNotFound if the id vanished (the caller should have loaded it
// in the same transaction, making that impossible).
func (t *Tx) UpdateTodo(id, title, description string, status policy.Status) (*schema.TodoItem, error) {
	now := t.store.clock.Now().UTC().Truncate(time.Second)

	err := sqlitex.Execute(t.conn,
		`UPDATE todos SET title = ?, description = ?, status = ?, updated_at = ? WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{title, description, string(status), now.Unix(), id},
		})
	if err != nil {
		return nil, fmt.Errorf("store: update todo: %w", err)
	}
	if t.conn.Changes() == 0 {
		return nil, ErrNotFound
	}

	return todoByID(t.conn, id)
}

// DeleteTodo removes the todo. Deletion is terminal: there is no
// soft-delete column and no way back. Returns ErrNotFound if the id
// does not exist.
func (t *Tx) DeleteTodo(id string) error {
	err := sqlitex.Execute(t.conn, `DELETE FROM todos WHERE id = ?`, &sqlitex.ExecOptions{
		Args: []any{id},
	})
	if err != nil {
		return fmt.Errorf("store: delete todo: %w", err)
	}
	if t.conn.Changes() == 0 {
		return ErrNotFound
	}
	return nil
}

func todoByID(conn *sqlite.Conn, id string) (*schema.TodoItem, error) {
	var item *schema.TodoItem
	err := sqlitex.Execute(conn,
		`SELECT id, title, description, status, owner_id, created_at, updated_at
		 FROM todos WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				scanned := scanTodo(stmt)
				item = &scanned
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("store: load todo: %w", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// scanTodo reads the seven standard todo columns, which every todo
// query selects in the same order.
func scanTodo(stmt *sqlite.Stmt) schema.TodoItem {
	return schema.TodoItem{
		ID:          stmt.ColumnText(0),
		Title:       stmt.ColumnText(1),
		Description: stmt.ColumnText(2),
		Status:      policy.Status(stmt.ColumnText(3)),
		OwnerID:     stmt.ColumnText(4),
		CreatedAt:   time.Unix(stmt.ColumnInt64(5), 0).UTC(),
		UpdatedAt:   time.Unix(stmt.ColumnInt64(6), 0).UTC(),
	}
}
