// Command pathplanner hosts the planner's HTTP API standalone, for
// deployments that don't need missionctl's other subcommands.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/uascommand/mission-system/pkg/logger"
	"github.com/uascommand/mission-system/pkg/runners"
)

func main() {
	_ = godotenv.Load()

	r, err := runners.DefaultRegistry.Get("serve")
	if err != nil {
		logger.Fatalf("failed to get serve runner: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn("received interrupt signal, shutting down...")
		cancel()
	}()

	if err := r.Run(ctx, nil); err != nil {
		logger.Fatalf("pathplanner exited with error: %v", err)
	}
}
