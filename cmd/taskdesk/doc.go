// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Command taskdesk is the command-line client for a taskdesk-service
// instance.
//
// Account commands (signup, login, logout) manage the cached session
// under ~/.taskdesk/credentials.json. Todo commands (list, create,
// update, delete) talk to the HTTP API with the cached token; "list
// --interactive" opens a terminal browser. Operator commands (status,
// export) talk to the service's admin socket and only work on the
// machine the service runs on.
package main
