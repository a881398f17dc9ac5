// Command uavsim runs a single simulated UAV, reading BACKEND_URL and UAV_ID
// from the environment (falling back to simulator.backend_url in
// $HOME/.uav-mission/config.yaml when BACKEND_URL is unset), for deployments
// that just need one UAV process per container.
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

	r, err := runners.DefaultRegistry.Get("simulate")
	if err != nil {
		logger.Fatalf("failed to get simulate runner: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn("received interrupt signal, stopping simulator...")
		cancel()
	}()

	if err := r.Run(ctx, nil); err != nil {
		logger.Fatalf("uavsim exited with error: %v", err)
	}
}
