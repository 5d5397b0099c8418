package model

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
)

// DefaultStateName is selected in the per-state panel when nothing else is configured
const DefaultStateName types.StateName = "California"

var hexColorPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// DashboardConfig represents the optional YAML dashboard configuration
type DashboardConfig struct {
	DefaultState types.StateName `yaml:"default_state"`
	Chart        ChartConfig     `yaml:"chart"`
}

// ChartConfig controls how line charts are drawn
type ChartConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	FontSize  float64 `yaml:"font_size"`
	FontColor string  `yaml:"font_color"`
}

// DefaultDashboardConfig returns the configuration used when no file is given
func DefaultDashboardConfig() *DashboardConfig {
	return &DashboardConfig{
		DefaultState: DefaultStateName,
		Chart: ChartConfig{
			Width:     1200,
			Height:    600,
			FontSize:  14,
			FontColor: "#663399",
		},
	}
}

// ApplyDefaults fills unset fields with the default configuration
func (c *DashboardConfig) ApplyDefaults() {
	def := DefaultDashboardConfig()
	if c.DefaultState == "" {
		c.DefaultState = def.DefaultState
	}
	if c.Chart.Width == 0 {
		c.Chart.Width = def.Chart.Width
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = def.Chart.Height
	}
	if c.Chart.FontSize == 0 {
		c.Chart.FontSize = def.Chart.FontSize
	}
	if c.Chart.FontColor == "" {
		c.Chart.FontColor = def.Chart.FontColor
	}
}

// Validate validates the dashboard configuration
func (c *DashboardConfig) Validate() error {
	if c.Chart.Width < 200 || c.Chart.Height < 150 {
		return goerr.New("chart size is too small",
			goerr.V("width", c.Chart.Width),
			goerr.V("height", c.Chart.Height))
	}
	if c.Chart.FontSize <= 0 {
		return goerr.New("font size must be positive", goerr.V("font_size", c.Chart.FontSize))
	}
	if !hexColorPattern.MatchString(c.Chart.FontColor) {
		return goerr.New("font color must be a hex RGB value", goerr.V("font_color", c.Chart.FontColor))
	}
	return nil
}
