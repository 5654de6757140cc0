// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package todoui implements the interactive terminal browser behind
// "taskdesk list --interactive". Built on bubbletea (Elm
// architecture): a todo list pane backed by bubbles/list, with a
// detail view that renders the todo's markdown description as styled
// terminal text.
//
// The package holds no network code. The caller fetches the todos and
// hands them to [New]; refreshing means re-running the command.
package todoui
