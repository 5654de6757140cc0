// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import "testing"

var allRoles = []Role{RoleUser, RoleManager, RoleAdmin}

var allStatuses = []Status{StatusDraft, StatusInProgress, StatusCompleted}

func TestParseRole(t *testing.T) {
	cases := []struct {
		raw  string
		want Role
	}{
		{"user", RoleUser},
		{"manager", RoleManager},
		{"admin", RoleAdmin},
		{"", RoleUser},        // missing role falls back to user
		{"root", RoleUser},    // unknown role falls back to user
		{"Admin", RoleUser},   // case-sensitive: not the closed-set value
		{"ADMIN", RoleUser},
		{"superuser", RoleUser},
	}
	for _, c := range cases {
		if got := ParseRole(c.raw); got != c.want {
			t.Errorf("ParseRole(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range allStatuses {
		if !ValidStatus(string(s)) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	for _, raw := range []string{"", "deleted", "Draft", "done"} {
		if ValidStatus(raw) {
			t.Errorf("ValidStatus(%q) = true, want false", raw)
		}
	}
}

func TestCanView(t *testing.T) {
	cases := []struct {
		role    Role
		isOwner bool
		want    Decision
	}{
		{RoleUser, true, Allow},
		{RoleUser, false, Deny},
		{RoleManager, true, Allow},
		{RoleManager, false, Allow},
		{RoleAdmin, true, Allow},
		{RoleAdmin, false, Allow},
	}
	for _, c := range cases {
		result := CanView(c.role, c.isOwner)
		if result.Decision != c.want {
			t.Errorf("CanView(%s, owner=%t) = %s, want %s", c.role, c.isOwner, result.Decision, c.want)
		}
	}
}

// View permission is monotonic across roles: anything a user can see
// of its own todos, a manager and an admin can see of anyone's. No
// role is strictly less permissive than user for viewing.
func TestCanView_Monotonic(t *testing.T) {
	for _, isOwner := range []bool{true, false} {
		if !CanView(RoleUser, isOwner).Allowed() {
			continue
		}
		for _, role := range []Role{RoleManager, RoleAdmin} {
			if !CanView(role, isOwner).Allowed() {
				t.Errorf("CanView(%s, owner=%t) denied but user is allowed", role, isOwner)
			}
		}
	}
}

func TestCanView_DenyReason(t *testing.T) {
	result := CanView(RoleUser, false)
	if result.Reason != ReasonNotOwner {
		t.Errorf("reason = %v, want ReasonNotOwner", result.Reason)
	}
}

func TestCanCreate(t *testing.T) {
	if !CanCreate(RoleUser).Allowed() {
		t.Error("CanCreate(user) denied, want allow")
	}
	for _, role := range []Role{RoleManager, RoleAdmin, Role("unknown"), Role("")} {
		result := CanCreate(role)
		if result.Allowed() {
			t.Errorf("CanCreate(%q) allowed, want deny", role)
		}
		if result.Reason != ReasonRoleDisallowed {
			t.Errorf("CanCreate(%q) reason = %v, want ReasonRoleDisallowed", role, result.Reason)
		}
	}
}

func TestCanUpdate(t *testing.T) {
	for _, role := range allRoles {
		for _, isOwner := range []bool{true, false} {
			result := CanUpdate(role, isOwner)
			wantAllow := role == RoleUser && isOwner
			if result.Allowed() != wantAllow {
				t.Errorf("CanUpdate(%s, owner=%t) = %s, want allow=%t", role, isOwner, result.Decision, wantAllow)
			}
		}
	}
}

func TestCanUpdate_DenyReasons(t *testing.T) {
	// A manager that owns nothing is denied for its role, not for
	// ownership: the role can never update.
	if got := CanUpdate(RoleManager, false).Reason; got != ReasonRoleDisallowed {
		t.Errorf("manager reason = %v, want ReasonRoleDisallowed", got)
	}
	// Admins have no update override either.
	if got := CanUpdate(RoleAdmin, true).Reason; got != ReasonRoleDisallowed {
		t.Errorf("admin reason = %v, want ReasonRoleDisallowed", got)
	}
	// A user on someone else's todo is denied for ownership.
	if got := CanUpdate(RoleUser, false).Reason; got != ReasonNotOwner {
		t.Errorf("non-owner user reason = %v, want ReasonNotOwner", got)
	}
}

// CanDelete over the full role × ownership × status space: 18
// combinations. Admin allows all 6 of its combinations; user allows
// exactly owner+draft; manager allows none.
func TestCanDelete_FullMatrix(t *testing.T) {
	for _, role := range allRoles {
		for _, isOwner := range []bool{true, false} {
			for _, status := range allStatuses {
				result := CanDelete(role, isOwner, status)
				wantAllow := role == RoleAdmin ||
					(role == RoleUser && isOwner && status == StatusDraft)
				if result.Allowed() != wantAllow {
					t.Errorf("CanDelete(%s, owner=%t, %s) = %s, want allow=%t",
						role, isOwner, status, result.Decision, wantAllow)
				}
			}
		}
	}
}

func TestCanDelete_DenyReasons(t *testing.T) {
	cases := []struct {
		name    string
		role    Role
		isOwner bool
		status  Status
		want    DenyReason
	}{
		{"manager never deletes, even owning a draft", RoleManager, true, StatusDraft, ReasonRoleDisallowed},
		{"user cannot delete someone else's draft", RoleUser, false, StatusDraft, ReasonNotOwner},
		{"owner cannot delete once in progress", RoleUser, true, StatusInProgress, ReasonWrongStatus},
		{"owner cannot delete once completed", RoleUser, true, StatusCompleted, ReasonWrongStatus},
		{"unknown role never deletes", Role("auditor"), true, StatusDraft, ReasonRoleDisallowed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result := CanDelete(c.role, c.isOwner, c.status)
			if result.Allowed() {
				t.Fatalf("allowed, want deny")
			}
			if result.Reason != c.want {
				t.Errorf("reason = %v, want %v", result.Reason, c.want)
			}
		})
	}
}

func TestCanDelete_AdminIgnoresOwnershipAndStatus(t *testing.T) {
	for _, isOwner := range []bool{true, false} {
		for _, status := range allStatuses {
			if !CanDelete(RoleAdmin, isOwner, status).Allowed() {
				t.Errorf("CanDelete(admin, owner=%t, %s) denied, want allow", isOwner, status)
			}
		}
	}
}

func TestDenyReasonStrings(t *testing.T) {
	// The three denial reasons must be mutually distinguishable in
	// their user-facing text.
	seen := map[string]DenyReason{}
	for _, reason := range []DenyReason{ReasonNotOwner, ReasonRoleDisallowed, ReasonWrongStatus} {
		text := reason.String()
		if text == "" || text == "allowed" {
			t.Errorf("reason %d has no denial text", reason)
		}
		if prev, dup := seen[text]; dup {
			t.Errorf("reasons %d and %d share text %q", prev, reason, text)
		}
		seen[text] = reason
	}
}
