// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package policy implements Taskdesk's attribute-based access control
// for todo items. A decision is computed from attributes of the
// principal (its role) and of the resource (who owns it, what status
// it is in). There is no per-role permission table and no role
// hierarchy.
//
// The policy surface is exactly four predicates:
//
//   - [CanView]: managers and admins see every todo; users see
//     only their own.
//   - [CanCreate]: only users create todos. Creation is deliberately
//     a user-only capability: tasks originate with the people who own
//     them, never with managers or admins.
//   - [CanUpdate]: only the owning user mutates a todo. There is no
//     admin or manager override for updates.
//   - [CanDelete]: admins delete anything; the owning user deletes
//     a todo only while it is still a draft. Managers never delete.
//
// Every predicate is a pure function: total over its input space,
// side-effect free, and safe to call concurrently. Each returns a
// [Result] carrying the decision and, on denial, a [DenyReason] that
// distinguishes "not owner" from "role disallowed" from "wrong
// status" so callers can produce debuggable 403 responses.
//
// Roles form a closed set. [ParseRole] maps anything outside the set
// (including the empty string) to [RoleUser]. A session without an
// explicit role is treated as a low-privilege user rather than
// rejected; this mirrors the account provisioning model, where every
// self-service signup is a user and privileged roles are assigned out
// of band.
package policy
