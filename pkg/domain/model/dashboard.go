package model

import (
	"github.com/secmon-lab/covidboard/pkg/domain/types"
)

// Fixed chart labels
const (
	XAxisTitle          = "Time"
	YAxisTitle          = "Number of cases"
	LegendTitleCounties = "Counties"
	LegendTitleStates   = "States"
)

// DashboardOptions holds everything needed to populate the selectors
type DashboardOptions struct {
	States       []types.StateName  `json:"states"`
	DefaultState types.StateName    `json:"default_state"`
	Counties     []types.CountyName `json:"counties"`
	Dates        DateAxis           `json:"dates"`
	DefaultFrom  int                `json:"default_from"`
	DefaultTo    int                `json:"default_to"`
	SnapshotID   types.SnapshotID   `json:"snapshot_id"`
}

// StateChartRequest is the input of the per-state panel
type StateChartRequest struct {
	State     types.StateName
	Counties  []types.CountyName
	FromIndex int
	ToIndex   int
}

// AllStatesChartRequest is the input of the all-states panel
type AllStatesChartRequest struct {
	FromIndex int
	ToIndex   int
}
