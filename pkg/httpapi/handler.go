// Package httpapi exposes pkg/planner over HTTP: a health check and the
// trajectory planning endpoint.
//
// No routing framework is pulled in here; net/http's ServeMux is used
// directly since the surface is two routes and nothing in this module's
// own dependency stack otherwise needs a router.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/uascommand/mission-system/pkg/logger"
	"github.com/uascommand/mission-system/pkg/planner"
)

// NewMux builds the planner HTTP surface: GET /health and POST /plan.
func NewMux(limits planner.Limits) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/plan", handlePlan(limits))
	return mux
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy", "service": "pathplanner"})
}

func handlePlan(limits planner.Limits) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		log := logger.WithField("request_id", requestID)

		mission, err := planner.DecodeMission(r.Body)
		if err != nil {
			log.Warnf("httpapi: /plan rejected malformed body: %v", err)
			writeError(w, http.StatusBadRequest, err)
			return
		}

		result, err := planner.Plan(mission, limits)
		if err != nil {
			var missingPoint *planner.MissingPoint2Error
			var gridTooLarge *planner.GridTooLargeError
			switch {
			case errors.Is(err, planner.ErrNoOrigins), errors.Is(err, planner.ErrNoTargets):
				writeError(w, http.StatusBadRequest, err)
			case errors.As(err, &missingPoint):
				writeError(w, http.StatusBadRequest, err)
			case errors.As(err, &gridTooLarge):
				writeError(w, http.StatusBadRequest, err)
			default:
				log.Errorf("httpapi: /plan failed: %v", err)
				writeError(w, http.StatusInternalServerError, err)
			}
			return
		}

		log.Infof("httpapi: planned %d trajectories", result.NumTrajectories)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Request-Id", requestID)
		_ = json.NewEncoder(w).Encode(planner.EncodeResult(result))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
