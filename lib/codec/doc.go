// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec centralizes CBOR encoding for the admin socket
// protocol.
//
// All encoding goes through a single EncMode configured for Core
// Deterministic Encoding (RFC 8949 §4.2): the same logical value
// always produces identical bytes. Decoding accepts standard CBOR and
// ignores unknown fields, so old clients keep working against newer
// servers.
package codec
