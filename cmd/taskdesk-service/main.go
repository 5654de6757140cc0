// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/taskdesk-foundation/taskdesk/lib/clock"
	"github.com/taskdesk-foundation/taskdesk/lib/config"
	"github.com/taskdesk-foundation/taskdesk/lib/service"
	"github.com/taskdesk-foundation/taskdesk/lib/session"
	"github.com/taskdesk-foundation/taskdesk/lib/sessiontoken"
	"github.com/taskdesk-foundation/taskdesk/lib/store"
	"github.com/taskdesk-foundation/taskdesk/lib/version"
)

// signingKeyFile is the name of the session signing key inside the
// state directory.
const signingKeyFile = "session-signing-key"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "path to the YAML config file (defaults apply when omitted)")
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("taskdesk-service %s\n", version.Info())
		return nil
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.StateDir, 0700); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if dir := filepath.Dir(cfg.Database); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}

	clk := clock.Real()

	st, err := store.Open(store.Config{
		Path:     cfg.Database,
		PoolSize: cfg.PoolSize,
		Clock:    clk,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer st.Close()

	publicKey, privateKey, generated, err := sessiontoken.LoadOrGenerateKeypair(
		filepath.Join(cfg.StateDir, signingKeyFile))
	if err != nil {
		return fmt.Errorf("loading session signing key: %w", err)
	}
	logger.Info("session signing key ready",
		"fingerprint", sessiontoken.Fingerprint(publicKey),
		"generated", generated,
	)

	api := newAPIServer(apiConfig{
		Store:      st,
		Sessions:   session.NewProvider(publicKey, clk),
		SigningKey: privateKey,
		TokenTTL:   time.Duration(cfg.SessionTTL),
		Clock:      clk,
		Logger:     logger,
	})

	httpServer := service.NewHTTPServer(service.HTTPServerConfig{
		Address: cfg.Listen,
		Handler: api.router(),
		Logger:  logger,
	})

	// Run the HTTP server and the admin socket until the first error
	// or signal. Either server failing takes the whole daemon down.
	serverCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 2)
	running := 1
	go func() { errs <- httpServer.Serve(serverCtx) }()

	if cfg.AdminSocket != "" {
		admin := newAdminServer(st, clk, logger)
		running++
		go func() { errs <- admin.serve(serverCtx, cfg.AdminSocket) }()
	}

	var firstErr error
	for i := 0; i < running; i++ {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
			cancel()
		}
	}
	return firstErr
}
