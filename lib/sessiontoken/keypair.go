// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package sessiontoken

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/zeebo/blake3"
)

// LoadOrGenerateKeypair loads the Ed25519 signing key from path, or
// generates and saves a new one if the file does not exist. The file
// holds the 64-byte private key and is written with 0600 permissions.
// Returns the keypair and whether it was newly generated.
func LoadOrGenerateKeypair(path string) (ed25519.PublicKey, ed25519.PrivateKey, bool, error) {
	keyBytes, err := os.ReadFile(path)
	if err == nil {
		if len(keyBytes) != ed25519.PrivateKeySize {
			return nil, nil, false, fmt.Errorf("signing key %s has %d bytes, want %d", path, len(keyBytes), ed25519.PrivateKeySize)
		}
		private := ed25519.PrivateKey(keyBytes)
		return private.Public().(ed25519.PublicKey), private, false, nil
	}
	if !os.IsNotExist(err) {
		return nil, nil, false, fmt.Errorf("reading signing key %s: %w", path, err)
	}

	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, false, fmt.Errorf("generating signing key: %w", err)
	}
	if err := os.WriteFile(path, private, 0600); err != nil {
		return nil, nil, false, fmt.Errorf("writing signing key %s: %w", path, err)
	}
	return public, private, true, nil
}

// Fingerprint returns a short hex identifier for a public key: the
// first 8 bytes of the key's BLAKE3 hash. Logged at startup so an
// operator can tell at a glance which signing key a service is using
// (and whether two services share one).
func Fingerprint(publicKey ed25519.PublicKey) string {
	sum := blake3.Sum256(publicKey)
	return hex.EncodeToString(sum[:8])
}
