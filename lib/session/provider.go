// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/taskdesk-foundation/taskdesk/lib/clock"
	"github.com/taskdesk-foundation/taskdesk/lib/policy"
	"github.com/taskdesk-foundation/taskdesk/lib/schema"
	"github.com/taskdesk-foundation/taskdesk/lib/sessiontoken"
)

// ErrNoSession means the request carries no usable session: the
// Authorization header is absent, not a bearer token, not valid
// base64, or the token fails verification. The gateway maps every
// ErrNoSession to a 401 without distinguishing the sub-causes, so a
// caller probing with forged tokens learns nothing from the response.
var ErrNoSession = errors.New("session: no valid session")

// Provider resolves the principal behind an HTTP request from its
// bearer token. Stateless and safe for concurrent use.
type Provider struct {
	publicKey ed25519.PublicKey
	clock     clock.Clock
}

// NewProvider creates a provider that verifies tokens against the
// given public key.
func NewProvider(publicKey ed25519.PublicKey, clk clock.Clock) *Provider {
	if len(publicKey) != ed25519.PublicKeySize {
		panic("session.NewProvider: public key has wrong size")
	}
	if clk == nil {
		panic("session.NewProvider: clock is required")
	}
	return &Provider{publicKey: publicKey, clock: clk}
}

// Principal returns the authenticated principal for the request, or
// ErrNoSession. The token's role is parsed through policy.ParseRole,
// so a token without a role (or with an unrecognized one) produces a
// principal with role "user".
func (p *Provider) Principal(r *http.Request) (schema.Principal, error) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return schema.Principal{}, ErrNoSession
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return schema.Principal{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	token, err := sessiontoken.Verify(p.publicKey, raw, p.clock.Now())
	if err != nil {
		return schema.Principal{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	return schema.Principal{
		ID:   token.Subject,
		Role: policy.ParseRole(token.Role),
	}, nil
}
