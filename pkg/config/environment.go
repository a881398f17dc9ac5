package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PlannerConfig bounds and tunes the grid A* path planner so that a
// pathological scale factor or jammer radius can't blow the grid up into an
// accidental denial-of-service.
type PlannerConfig struct {
	// GridScale subdivides each coordinate unit into GridScale cells per axis
	// (default 2).
	GridScale int `yaml:"grid_scale"`
	// MaxGridCells is the hard cap on (x_max-x_min+1)*(y_max-y_min+1) for the scaled grid.
	// A mission whose bounding box would exceed this is rejected before rasterization.
	MaxGridCells int `yaml:"max_grid_cells"`
	// EndpointRepairRadius is the maximum Chebyshev ring radius searched when an endpoint
	// lands on a blocked cell (default 500).
	EndpointRepairRadius int `yaml:"endpoint_repair_radius"`
	// ListenAddr is the address cmd/pathplanner binds to.
	ListenAddr string `yaml:"listen_addr"`
}

// SimulatorConfig configures a single cmd/uavsim instance.
type SimulatorConfig struct {
	// BackendURL is the default duplex channel endpoint, used when BACKEND_URL
	// is unset. The simulate runner always appends "?id=<UAV id>" to it; a
	// BACKEND_URL from the environment is used unchanged.
	BackendURL string `yaml:"backend_url"`
	// ReconnectDelaySeconds is the backoff after a channel disconnect (default 3).
	// It is loaded and saved with the file; the simulate runner does not read it
	// and uses simulator.DefaultOptions' fixed 3s backoff.
	ReconnectDelaySeconds int `yaml:"reconnect_delay_seconds"`
	// TickRateHz is the physics update frequency in Hz (default 20). It is
	// loaded and saved with the file; the simulate runner does not read it and
	// uses simulator.DefaultOptions' fixed 20Hz tick.
	TickRateHz int `yaml:"tick_rate_hz"`
}

// Config is the top-level configuration for missionctl and the binaries it wraps.
type Config struct {
	Planner   PlannerConfig   `yaml:"planner"`
	Simulator SimulatorConfig `yaml:"simulator"`
}

// DefaultHornetPositions is the fixed initial-position table for named UAV
// spawn points: twelve named positions, with unrecognized UAV_ID values
// defaulting to the origin.
var DefaultHornetPositions = map[string][3]float64{
	"HORNET-1":  {0.0, 0.0, 0.0},
	"HORNET-2":  {20.0, 20.0, 0.0},
	"HORNET-3":  {40.0, 0.0, 0.0},
	"HORNET-4":  {20.0, -20.0, 0.0},
	"HORNET-5":  {-20.0, -20.0, 0.0},
	"HORNET-6":  {-20.0, 20.0, 0.0},
	"HORNET-7":  {-100.0, 100.0, 0.0},
	"HORNET-8":  {-80.0, 120.0, 0.0},
	"HORNET-9":  {-60.0, 100.0, 0.0},
	"HORNET-10": {-80.0, 80.0, 0.0},
	"HORNET-11": {-120.0, 80.0, 0.0},
	"HORNET-12": {-120.0, 120.0, 0.0},
}

// InitialPosition looks up the spawn point for uavID, defaulting to the origin for
// unrecognized ids.
func InitialPosition(uavID string) (x, y, z float64) {
	if p, ok := DefaultHornetPositions[uavID]; ok {
		return p[0], p[1], p[2]
	}
	return 0, 0, 0
}

// defaultConfigDir is the per-user configuration directory.
const defaultConfigDir = ".uav-mission"

// Load loads configuration from the default location ($HOME/.uav-mission/config.yaml),
// falling back to hardcoded defaults when the file is absent.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, defaultConfigDir, "config.yaml")
	return LoadFromFile(configPath)
}

// LoadFromFile loads configuration from a specific file, returning defaults if it
// doesn't exist.
func LoadFromFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := defaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Save writes the configuration to $HOME/.uav-mission/config.yaml.
func Save(cfg *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, defaultConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func defaultConfig() *Config {
	return &Config{
		Planner: PlannerConfig{
			GridScale:            2,
			MaxGridCells:         4_000_000,
			EndpointRepairRadius: 500,
			ListenAddr:           ":5000",
		},
		Simulator: SimulatorConfig{
			BackendURL:            "ws://backend:3001/ws/simulator",
			ReconnectDelaySeconds: 3,
			TickRateHz:            20,
		},
	}
}
