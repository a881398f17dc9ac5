package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uascommand/mission-system/pkg/runners"
)

var planFile string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan trajectories for a mission",
	Long: `Plan reads an origin/target/jammer mission from a JSON file (the same
shape the pathplanner HTTP API accepts) and prints the resulting
trajectories. With no --file, it interactively prompts for a single
origin/target pair.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planFile, "file", "f", "", "mission JSON file (omit for interactive mode)")
}

func runPlan(cmd *cobra.Command, _ []string) error {
	r, err := runners.DefaultRegistry.Get("plan")
	if err != nil {
		return fmt.Errorf("failed to get plan runner: %w", err)
	}

	return r.Run(context.Background(), map[string]interface{}{"file": planFile})
}
