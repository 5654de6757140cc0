// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Command taskdesk-service is the Taskdesk daemon: a JSON HTTP API for
// accounts and todos, plus a CBOR admin protocol on a Unix socket.
//
// The HTTP surface:
//
//	POST   /api/signup        create an account (role is always "user")
//	POST   /api/login         exchange email+password for a session token
//	GET    /api/todos         list todos visible to the caller
//	POST   /api/todos         create a todo (status is always draft)
//	PUT    /api/todos/{id}    update title, description, status
//	DELETE /api/todos/{id}    delete a todo
//
// Every /api/todos route requires a bearer session token. What a
// caller may do is decided entirely by lib/policy: users act on their
// own todos, managers see everything but change nothing, admins can
// delete anything.
//
// The admin socket (local operators only, no authentication beyond
// filesystem permissions) answers "status" and "export" actions.
package main
