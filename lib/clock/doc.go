// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts the current time for testability.
// Production code injects [Real]; tests inject [Fake] and advance it
// deterministically. Anything in Taskdesk that reads the current time
// (token minting and expiry, todo timestamps, service uptime) takes
// a Clock instead of calling time.Now directly.
package clock
