// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines Taskdesk's domain and wire types: principals,
// user accounts, todo items, and the request/response bodies of the
// HTTP API. Types carry both JSON tags (HTTP API) and CBOR tags (admin
// socket, export stream) so one definition serves both wire formats.
//
// Two invariants are encoded structurally rather than checked at
// runtime:
//
//   - CreateTodoRequest has no status and no owner field. A caller
//     cannot supply either; the gateway forces status=draft and
//     owner=principal at creation.
//   - User.PasswordHash is excluded from both JSON and CBOR encoding.
//     Account responses can embed a User directly without leaking the
//     hash.
package schema
