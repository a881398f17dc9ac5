package runners

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/uascommand/mission-system/pkg/config"
	"github.com/uascommand/mission-system/pkg/logger"
	"github.com/uascommand/mission-system/pkg/simulator"
	"github.com/uascommand/mission-system/pkg/transport"
	"github.com/uascommand/mission-system/pkg/uav"
)

func init() {
	_ = DefaultRegistry.Register("simulate", func() Runner { return &SimulateRunner{} })
}

// SimulateRunner runs a single UAV's 20Hz physics/duplex-channel loop until
// its context is canceled, mirroring the original simulator.py entrypoint.
type SimulateRunner struct{}

func (r *SimulateRunner) Name() string        { return "simulate" }
func (r *SimulateRunner) Description() string { return "run a single simulated UAV" }

func (r *SimulateRunner) Run(ctx context.Context, params map[string]interface{}) error {
	uavID := envOr("UAV_ID", "UAV-1")
	if v, ok := params["uav_id"].(string); ok && v != "" {
		uavID = v
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	backendURL := envOr("BACKEND_URL", fmt.Sprintf("%s?id=%s", cfg.Simulator.BackendURL, uavID))
	if v, ok := params["backend_url"].(string); ok && v != "" {
		backendURL = v
	}

	x, y, z := config.InitialPosition(uavID)
	state := uav.New(uavID, uav.Vector3{X: x, Y: y, Z: z})

	logger.LogKeyValues(map[string]interface{}{
		"uav_id":      uavID,
		"backend_url": backendURL,
	})

	sim := simulator.New(
		transport.WebSocketDialer{Header: http.Header{}},
		state,
		simulator.Options{BackendURL: backendURL},
	)

	go func() {
		<-ctx.Done()
		sim.Stop()
	}()

	sim.Run(ctx)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
