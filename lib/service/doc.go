// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package service provides the server lifecycle plumbing shared by
// Taskdesk daemons.
//
// [HTTPServer] serves the todo API over TCP. [SocketServer] serves the
// admin protocol (status, export) over a Unix socket using CBOR
// request-response messages. Both follow the same lifecycle: Serve(ctx)
// blocks until the context is cancelled, then drains in-flight work
// before returning.
package service
