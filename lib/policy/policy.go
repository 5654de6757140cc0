// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package policy

// Role identifies a principal's privilege level. The set is closed:
// user, manager, admin. Role is carried as a typed string so it
// serializes naturally in JSON and CBOR.
type Role string

const (
	// RoleUser is the default role. Users create todos, see their own
	// todos, mutate their own todos, and delete their own drafts.
	RoleUser Role = "user"

	// RoleManager sees every todo but cannot create, update, or
	// delete anything.
	RoleManager Role = "manager"

	// RoleAdmin sees every todo and can delete any todo in any
	// status. Admins cannot create or update todos.
	RoleAdmin Role = "admin"
)

// ParseRole maps a raw role string to a Role. Unknown values,
// including the empty string, map to RoleUser. A session that
// carries no role, or a role this version does not know, is treated
// as a low-privilege user rather than failing closed.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleManager:
		return RoleManager
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// Status is the lifecycle state of a todo item. Transitions between
// statuses are unrestricted in value space; only the permission to
// perform a transition is gated (CanUpdate).
type Status string

const (
	// StatusDraft is the initial status of every todo. The only
	// status from which a non-admin owner may delete.
	StatusDraft Status = "draft"

	// StatusInProgress marks a todo as actively being worked on.
	StatusInProgress Status = "in_progress"

	// StatusCompleted marks a todo as finished. Completed todos can
	// still be edited (and re-opened) by their owner, but only an
	// admin can delete them.
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether raw is one of the three known statuses.
func ValidStatus(raw string) bool {
	switch Status(raw) {
	case StatusDraft, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Decision is the outcome of a policy check.
type Decision int

const (
	// Deny means the action is not permitted.
	Deny Decision = iota

	// Allow means the action is permitted.
	Allow
)

// String returns "allow" or "deny".
func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// DenyReason describes why a policy check was denied. The three
// non-zero reasons are deliberately distinguishable so that denial
// responses are debuggable: a caller can tell "you are not the
// owner" apart from "your role can never do this" apart from "the
// todo is in the wrong status".
type DenyReason int

const (
	// ReasonNone means the check was not denied.
	ReasonNone DenyReason = iota

	// ReasonNotOwner means the action requires ownership and the
	// principal does not own the todo.
	ReasonNotOwner

	// ReasonRoleDisallowed means the principal's role can never
	// perform this action, regardless of ownership or status.
	ReasonRoleDisallowed

	// ReasonWrongStatus means the todo's status blocks the action:
	// an owning user may only delete a todo while it is a draft.
	ReasonWrongStatus
)

// String returns the human-readable denial text used in 403 bodies.
func (r DenyReason) String() string {
	switch r {
	case ReasonNotOwner:
		return "you do not own this todo"
	case ReasonRoleDisallowed:
		return "your role does not permit this action"
	case ReasonWrongStatus:
		return "only todos in draft status may be deleted by their owner"
	default:
		return "allowed"
	}
}

// Result is the outcome of a policy check: the decision plus, when
// denied, the reason.
type Result struct {
	// Decision is Allow or Deny.
	Decision Decision

	// Reason is set when Decision is Deny; ReasonNone otherwise.
	Reason DenyReason
}

// Allowed reports whether the decision is Allow.
func (r Result) Allowed() bool { return r.Decision == Allow }

var allowed = Result{Decision: Allow}

func denied(reason DenyReason) Result {
	return Result{Decision: Deny, Reason: reason}
}

// CanView decides whether a principal may read a single todo.
// Managers and admins view every todo; a user views only todos it
// owns.
func CanView(role Role, isOwner bool) Result {
	switch role {
	case RoleManager, RoleAdmin:
		return allowed
	}
	if isOwner {
		return allowed
	}
	return denied(ReasonNotOwner)
}

// CanCreate decides whether a principal may create a todo. Only
// users create todos; manager and admin are read/oversight roles and
// never originate tasks.
func CanCreate(role Role) Result {
	if role == RoleUser {
		return allowed
	}
	return denied(ReasonRoleDisallowed)
}

// CanUpdate decides whether a principal may mutate a todo's title,
// description, or status. Only the owning user may update; there is
// no admin or manager override.
func CanUpdate(role Role, isOwner bool) Result {
	if role != RoleUser {
		return denied(ReasonRoleDisallowed)
	}
	if !isOwner {
		return denied(ReasonNotOwner)
	}
	return allowed
}

// CanDelete decides whether a principal may delete a todo. Admins
// delete unconditionally. The owning user deletes only while the
// todo is still a draft. Managers never delete.
func CanDelete(role Role, isOwner bool, status Status) Result {
	switch role {
	case RoleAdmin:
		return allowed
	case RoleUser:
		if !isOwner {
			return denied(ReasonNotOwner)
		}
		if status != StatusDraft {
			return denied(ReasonWrongStatus)
		}
		return allowed
	default:
		// Manager, or any role value outside the closed set.
		return denied(ReasonRoleDisallowed)
	}
}
