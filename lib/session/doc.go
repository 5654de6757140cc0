// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package session resolves the authenticated principal for an HTTP
// request and handles account password hashing.
//
// The [Provider] reads a bearer token from the Authorization header,
// verifies it against the service's session signing key, and returns
// the principal (id + role). A token whose role field is empty yields
// a principal with role "user", the documented low-privilege default
// for sessions that carry no explicit role. The provider never fails
// closed on a missing role; it fails only on a missing, malformed,
// forged, or expired token.
//
// Passwords are hashed with argon2id using the RFC 9106 encoded
// string format, so parameters can be tuned later without invalidating
// stored hashes.
package session
