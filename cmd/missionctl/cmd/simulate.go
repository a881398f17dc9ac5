package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/uascommand/mission-system/pkg/logger"
	"github.com/uascommand/mission-system/pkg/runners"
)

var (
	simulateUAVID      string
	simulateBackendURL string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a single simulated UAV",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simulateUAVID, "uav-id", "", "UAV identifier (overrides UAV_ID)")
	simulateCmd.Flags().StringVar(&simulateBackendURL, "backend-url", "", "backend WebSocket URL (overrides BACKEND_URL)")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	r, err := runners.DefaultRegistry.Get("simulate")
	if err != nil {
		return fmt.Errorf("failed to get simulate runner: %w", err)
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

	return r.Run(ctx, map[string]interface{}{
		"uav_id":      simulateUAVID,
		"backend_url": simulateBackendURL,
	})
}
