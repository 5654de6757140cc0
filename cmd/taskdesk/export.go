// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/pflag"

	"github.com/taskdesk-foundation/taskdesk/cmd/taskdesk/cli"
	"github.com/taskdesk-foundation/taskdesk/lib/schema"
	"github.com/taskdesk-foundation/taskdesk/lib/service"
)

// adminStatus mirrors the service's "status" response.
type adminStatus struct {
	Version       string `cbor:"version"`
	UptimeSeconds int64  `cbor:"uptime_seconds"`
	Todos         int    `cbor:"todos"`
	Users         int    `cbor:"users"`
}

// adminExport mirrors the service's "export" response.
type adminExport struct {
	ExportedAt time.Time         `cbor:"exported_at"`
	Users      []schema.User     `cbor:"users"`
	Todos      []schema.TodoItem `cbor:"todos"`
}

func statusCommand() *cli.Command {
	var socketPath string
	return &cli.Command{
		Name:    "status",
		Summary: "show service status via the admin socket",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("status", pflag.ContinueOnError)
			flagSet.StringVar(&socketPath, "socket", defaultAdminSocket, "admin socket path")
			return flagSet
		},
		Run: func(args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			var status adminStatus
			err := service.Call(ctx, socketPath, map[string]string{"action": "status"}, &status)
			if err != nil {
				return err
			}

			fmt.Printf("version: %s\n", status.Version)
			fmt.Printf("uptime:  %s\n", time.Duration(status.UptimeSeconds)*time.Second)
			fmt.Printf("todos:   %d\n", status.Todos)
			fmt.Printf("users:   %d\n", status.Users)
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	var socketPath, outputPath string
	return &cli.Command{
		Name:    "export",
		Summary: "dump all users and todos to a zstd-compressed JSON file",
		Examples: []cli.Example{
			{Description: "nightly backup", Command: "taskdesk export --output backup-$(date +%F).json.zst"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("export", pflag.ContinueOnError)
			flagSet.StringVar(&socketPath, "socket", defaultAdminSocket, "admin socket path")
			flagSet.StringVarP(&outputPath, "output", "o", "taskdesk-export.json.zst", "output file")
			return flagSet
		},
		Run: func(args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			var export adminExport
			err := service.Call(ctx, socketPath, map[string]string{"action": "export"}, &export)
			if err != nil {
				return err
			}

			if err := writeCompressedJSON(outputPath, export); err != nil {
				return err
			}
			fmt.Printf("exported %d users and %d todos to %s\n",
				len(export.Users), len(export.Todos), outputPath)
			return nil
		},
	}
}

// writeCompressedJSON writes v as zstd-compressed indented JSON.
func writeCompressedJSON(path string, v any) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	writer, err := zstd.NewWriter(file)
	if err != nil {
		return fmt.Errorf("initializing compressor: %w", err)
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		writer.Close()
		return fmt.Errorf("encoding export: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("flushing compressor: %w", err)
	}
	return nil
}
