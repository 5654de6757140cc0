// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package sessiontoken

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// signatureSize is the fixed size of an Ed25519 signature.
const signatureSize = ed25519.SignatureSize // 64 bytes

// encMode encodes token payloads with Core Deterministic Encoding
// (RFC 8949 §4.2) so the same logical token always produces the same
// signed bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("sessiontoken: CBOR encoder initialization failed: " + err.Error())
	}
}

// Token is the CBOR-encoded payload of a session token. Integer keys
// keep the wire form compact; a signed token is ~120 bytes.
type Token struct {
	// Subject is the user ID this session belongs to.
	Subject string `cbor:"1,keyasint"`

	// Role is the subject's role at login time. Empty means "user".
	// Role changes made after login take effect when the subject
	// logs in again; the token is not re-validated against the
	// account record on each request.
	Role string `cbor:"2,keyasint,omitempty"`

	// ID uniquely identifies this token (UUID string).
	ID string `cbor:"3,keyasint"`

	// IssuedAt is a Unix timestamp (seconds) of when the token was
	// minted.
	IssuedAt int64 `cbor:"4,keyasint"`

	// ExpiresAt is a Unix timestamp (seconds) after which the token
	// is no longer valid.
	ExpiresAt int64 `cbor:"5,keyasint"`
}

// Errors returned by Verify.
var (
	ErrTokenTooShort    = errors.New("sessiontoken: token too short for signature")
	ErrInvalidSignature = errors.New("sessiontoken: invalid Ed25519 signature")
	ErrTokenExpired     = errors.New("sessiontoken: token has expired")
)

// Mint signs a Token and returns the raw wire bytes: CBOR payload
// followed by the 64-byte Ed25519 signature.
func Mint(privateKey ed25519.PrivateKey, token *Token) ([]byte, error) {
	payload, err := encMode.Marshal(token)
	if err != nil {
		return nil, fmt.Errorf("sessiontoken: encoding payload: %w", err)
	}

	signature := ed25519.Sign(privateKey, payload)

	result := make([]byte, len(payload)+signatureSize)
	copy(result, payload)
	copy(result[len(payload):], signature)
	return result, nil
}

// Verify splits the raw token bytes, checks the Ed25519 signature,
// decodes the payload, and checks expiry. Returns the decoded Token
// on success.
func Verify(publicKey ed25519.PublicKey, tokenBytes []byte, now time.Time) (*Token, error) {
	if len(tokenBytes) <= signatureSize {
		return nil, ErrTokenTooShort
	}

	splitPoint := len(tokenBytes) - signatureSize
	payload := tokenBytes[:splitPoint]
	signature := tokenBytes[splitPoint:]

	if !ed25519.Verify(publicKey, payload, signature) {
		return nil, ErrInvalidSignature
	}

	var token Token
	if err := cbor.Unmarshal(payload, &token); err != nil {
		return nil, fmt.Errorf("sessiontoken: decoding payload: %w", err)
	}

	if now.Unix() >= token.ExpiresAt {
		return nil, ErrTokenExpired
	}

	return &token, nil
}
