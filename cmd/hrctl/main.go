package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"hrmaturity-backend/internal/cli"
	"hrmaturity-backend/internal/shared/telemetry"
)

func main() {
	// stdout carries command output and the MCP stream; debug logs go to stderr.
	logger := zap.NewNop()
	if os.Getenv("DEBUG") == "true" {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
		}
	}
	telemetry.SetLogger(logger)
	defer telemetry.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(cli.DefaultLoader).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
