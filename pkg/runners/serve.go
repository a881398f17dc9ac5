package runners

import (
	"context"
	"net/http"
	"time"

	"github.com/uascommand/mission-system/pkg/config"
	"github.com/uascommand/mission-system/pkg/httpapi"
	"github.com/uascommand/mission-system/pkg/logger"
	"github.com/uascommand/mission-system/pkg/planner"
)

func init() {
	_ = DefaultRegistry.Register("serve", func() Runner { return &ServeRunner{} })
}

// ServeRunner hosts the planner HTTP API until its context is canceled.
type ServeRunner struct{}

func (r *ServeRunner) Name() string        { return "serve" }
func (r *ServeRunner) Description() string { return "run the pathplanner HTTP API" }

func (r *ServeRunner) Run(ctx context.Context, params map[string]interface{}) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	addr := cfg.Planner.ListenAddr
	if v, ok := params["addr"].(string); ok && v != "" {
		addr = v
	}

	limits := planner.Limits{
		GridScale:            cfg.Planner.GridScale,
		MaxGridCells:         cfg.Planner.MaxGridCells,
		EndpointRepairRadius: cfg.Planner.EndpointRepairRadius,
	}

	server := &http.Server{
		Addr:    addr,
		Handler: httpapi.NewMux(limits),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Successf("pathplanner listening on %s", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
