// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"net"

	"github.com/taskdesk-foundation/taskdesk/lib/codec"
)

// Call performs one request-response cycle against an admin socket:
// dial, send the CBOR-encoded request, decode the response envelope,
// close. A non-OK response becomes an error.
//
// If result is non-nil, the response's data field is decoded into it.
func Call(ctx context.Context, socketPath string, request any, result any) error {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", socketPath, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if err := codec.NewEncoder(conn).Encode(request); err != nil {
		return fmt.Errorf("sending request: %w", err)
	}

	var response Response
	if err := codec.NewDecoder(conn).Decode(&response); err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if !response.OK {
		return fmt.Errorf("server error: %s", response.Error)
	}

	if result != nil {
		if len(response.Data) == 0 {
			return fmt.Errorf("response has no data field")
		}
		if err := codec.Unmarshal(response.Data, result); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}
	return nil
}
