package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Dashboard holds the dashboard configuration file and overrides
type Dashboard struct {
	ConfigPath   string
	DefaultState string
}

// Flags returns CLI flags for Dashboard configuration
func (d *Dashboard) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dashboard-config",
			Usage:       "YAML file with the default state and chart appearance",
			Category:    "Dashboard",
			Sources:     cli.EnvVars("COVIDBOARD_DASHBOARD_CONFIG"),
			Destination: &d.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "default-state",
			Usage:       "State selected when the dashboard opens (overrides the file)",
			Category:    "Dashboard",
			Sources:     cli.EnvVars("COVIDBOARD_DEFAULT_STATE"),
			Destination: &d.DefaultState,
		},
	}
}

// Configure loads the dashboard configuration, falling back to the defaults without a file
func (d *Dashboard) Configure() (*model.DashboardConfig, error) {
	cfg := model.DefaultDashboardConfig()
	if d.ConfigPath != "" {
		loaded, err := LoadDashboardConfigFromFile(d.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if d.DefaultState != "" {
		cfg.DefaultState = types.StateName(d.DefaultState)
	}
	return cfg, nil
}

// LogValue returns structured log value
func (d Dashboard) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("config", d.ConfigPath),
		slog.String("default_state", d.DefaultState),
	)
}

// LoadDashboardConfigFromFile loads the dashboard configuration from YAML file
func LoadDashboardConfigFromFile(path string) (*model.DashboardConfig, error) {
	if path == "" {
		return nil, goerr.New("configuration file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "configuration file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read configuration file",
			goerr.V("path", path))
	}

	var config model.DashboardConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML configuration",
			goerr.V("path", path))
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid configuration",
			goerr.V("path", path))
	}

	return &config, nil
}
