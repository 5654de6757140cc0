// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the Taskdesk
// service.
//
// Configuration comes from a single file passed via the --config flag.
// There are no fallbacks, no ~/.config discovery, and no automatic
// file search: a service's configuration is exactly what its config
// file says, expanded against the environment for path fields only
// (${HOME}, ${VAR}, ${VAR:-default}).
//
// [Default] returns a development configuration that runs entirely out
// of ./taskdesk-data with the HTTP API on localhost.
package config
