// Package main is the entry point for the JobTrackr API server.
//
// main stays minimal: read configuration, build the logger, hand everything
// to internal/server. All actual behaviour lives in the internal packages so
// it can be constructed and tested without running a process.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/tanvir/jobtrackr/internal/config"
	"github.com/tanvir/jobtrackr/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg := config.Load()
	if cfg.UsingDevSecret() {
		logger.Warn("JWT_SECRET not set — using the built-in development secret")
	}

	// Bound the time spent connecting to the store at startup; a Mongo that
	// is down should fail the boot quickly, not hang it.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	srv, err := server.New(ctx, server.Config{
		Port:      cfg.Port,
		MongoURI:  cfg.MongoURI,
		MongoDB:   cfg.MongoDB,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}, logger)
	cancel()
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
