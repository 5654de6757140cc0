// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package sessiontoken implements Taskdesk's signed session tokens.
//
// A token is a CBOR-encoded payload (subject, role, token ID, issue
// and expiry timestamps) followed by a 64-byte Ed25519 signature over
// the payload. The service mints a token at login and verifies it on
// every request; no session state is stored server-side, so a token
// is valid until it expires.
//
// The role travels inside the signed payload. The signature therefore
// covers it: a client cannot upgrade its own role without invalidating
// the token. An empty role field is legal and means "user"; the
// session provider applies that default, not this package.
//
// The signing keypair lives in the service's state directory as a
// single 64-byte Ed25519 private key file ([LoadOrGenerateKeypair]).
// Rotating the key invalidates every outstanding session, which is
// the intended emergency revocation lever.
package sessiontoken
