package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
)

func TestDashboardConfig_ApplyDefaults(t *testing.T) {
	cfg := &model.DashboardConfig{
		DefaultState: "Texas",
		Chart:        model.ChartConfig{Width: 800},
	}
	cfg.ApplyDefaults()

	gt.Equal(t, cfg.DefaultState, "Texas")
	gt.Equal(t, cfg.Chart.Width, 800)
	gt.Equal(t, cfg.Chart.Height, 600)
	gt.Equal(t, cfg.Chart.FontSize, 14.0)
	gt.Equal(t, cfg.Chart.FontColor, "#663399")
	gt.NoError(t, cfg.Validate())
}

func TestDashboardConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		modify  func(*model.DashboardConfig)
		wantErr bool
	}{
		{name: "defaults", modify: func(c *model.DashboardConfig) {}},
		{name: "color without hash", modify: func(c *model.DashboardConfig) { c.Chart.FontColor = "336699" }},
		{name: "too narrow", modify: func(c *model.DashboardConfig) { c.Chart.Width = 100 }, wantErr: true},
		{name: "too short", modify: func(c *model.DashboardConfig) { c.Chart.Height = 100 }, wantErr: true},
		{name: "zero font size", modify: func(c *model.DashboardConfig) { c.Chart.FontSize = 0 }, wantErr: true},
		{name: "named color", modify: func(c *model.DashboardConfig) { c.Chart.FontColor = "rebeccapurple" }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := model.DefaultDashboardConfig()
			tc.modify(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}
