// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. 64 MB / 1 pass / 4 lanes is the RFC 9106
// second recommended option, sized for an interactive login path.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// ErrHashMismatch means the password does not match the stored hash.
var ErrHashMismatch = errors.New("session: password does not match")

// HashPassword hashes a password with argon2id and a random salt,
// returning the standard encoded form
// ($argon2id$v=19$m=...,t=...,p=...$salt$hash). The parameters are
// embedded in the string, so they can change later without breaking
// verification of existing hashes.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("session: generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
	return encoded, nil
}

// VerifyPassword checks a password against an encoded argon2id hash.
// Returns nil on match, ErrHashMismatch on mismatch, and a descriptive
// error if the encoded string is malformed. Comparison is constant
// time.
func VerifyPassword(encoded, password string) error {
	parts := strings.Split(encoded, "$")
	// Leading "$" yields an empty first element: ["", "argon2id",
	// "v=19", "m=...,t=...,p=...", salt, hash].
	if len(parts) != 6 || parts[1] != "argon2id" {
		return fmt.Errorf("session: malformed password hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return fmt.Errorf("session: malformed hash version: %w", err)
	}
	if version != argon2.Version {
		return fmt.Errorf("session: unsupported argon2 version %d", version)
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return fmt.Errorf("session: malformed hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("session: malformed hash salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("session: malformed hash digest: %w", err)
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrHashMismatch
	}
	return nil
}
