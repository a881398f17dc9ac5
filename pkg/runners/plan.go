package runners

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"

	"github.com/uascommand/mission-system/pkg/config"
	"github.com/uascommand/mission-system/pkg/geo"
	"github.com/uascommand/mission-system/pkg/logger"
	"github.com/uascommand/mission-system/pkg/planner"
)

func init() {
	_ = DefaultRegistry.Register("plan", func() Runner { return &PlanRunner{} })
}

// PlanRunner runs pkg/planner once against a mission read from a file, or,
// with no file given, a single origin/target pair collected interactively.
type PlanRunner struct{}

func (r *PlanRunner) Name() string        { return "plan" }
func (r *PlanRunner) Description() string { return "plan trajectories for a mission" }

func (r *PlanRunner) Run(ctx context.Context, params map[string]interface{}) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var mission planner.Mission
	if path, ok := params["file"].(string); ok && path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		mission, err = planner.DecodeMission(f)
		if err != nil {
			return fmt.Errorf("decoding mission file: %w", err)
		}
	} else {
		mission, err = promptMission()
		if err != nil {
			return err
		}
	}

	limits := planner.Limits{
		GridScale:            cfg.Planner.GridScale,
		MaxGridCells:         cfg.Planner.MaxGridCells,
		EndpointRepairRadius: cfg.Planner.EndpointRepairRadius,
	}

	var result *planner.Result
	spin := logger.NewSpinner(fmt.Sprintf("planning %d pair(s)", len(mission.Origins)))
	spin.Start()
	result, err = planner.Plan(mission, limits)
	if err != nil {
		spin.Error(fmt.Sprintf("planning failed: %v", err))
		return err
	}
	spin.Success(fmt.Sprintf("planned %d/%d trajectories", result.NumTrajectories, len(mission.Origins)))
	return json.NewEncoder(os.Stdout).Encode(planner.EncodeResult(result))
}

// promptMission interactively collects a single origin/target pair via
// survey, for CLI runs with no mission file on hand.
func promptMission() (planner.Mission, error) {
	answers := struct {
		OriginX float64
		OriginY float64
		TargetX float64
		TargetY float64
	}{}

	questions := []*survey.Question{
		{
			Name:     "originx",
			Prompt:   &survey.Input{Message: "Origin X (coordinate units):", Default: "0"},
			Validate: survey.Required,
		},
		{
			Name:     "originy",
			Prompt:   &survey.Input{Message: "Origin Y (coordinate units):", Default: "0"},
			Validate: survey.Required,
		},
		{
			Name:     "targetx",
			Prompt:   &survey.Input{Message: "Target X (coordinate units):", Default: "100"},
			Validate: survey.Required,
		},
		{
			Name:     "targety",
			Prompt:   &survey.Input{Message: "Target Y (coordinate units):", Default: "0"},
			Validate: survey.Required,
		},
	}

	raw := map[string]string{}
	for _, q := range questions {
		var v string
		if err := survey.AskOne(q.Prompt, &v, survey.WithValidator(q.Validate)); err != nil {
			return planner.Mission{}, err
		}
		raw[q.Name] = v
	}

	var err error
	if answers.OriginX, err = parseFloat(raw["originx"]); err != nil {
		return planner.Mission{}, err
	}
	if answers.OriginY, err = parseFloat(raw["originy"]); err != nil {
		return planner.Mission{}, err
	}
	if answers.TargetX, err = parseFloat(raw["targetx"]); err != nil {
		return planner.Mission{}, err
	}
	if answers.TargetY, err = parseFloat(raw["targety"]); err != nil {
		return planner.Mission{}, err
	}

	originXY := geo.Point2{X: answers.OriginX, Y: answers.OriginY}
	targetXY := geo.Point2{X: answers.TargetX, Y: answers.TargetY}

	return planner.Mission{
		Origins: []planner.Endpoint{{ID: "origin-1", XY: &originXY}},
		Targets: []planner.Endpoint{{ID: "target-1", XY: &targetXY}},
	}, nil
}

func parseFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%g", &v)
	return v, err
}
