package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/domain/interfaces"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
)

// Dashboard serves the per-state and all-states panels from one snapshot per call
type Dashboard struct {
	snapshots    interfaces.Snapshots
	defaultState types.StateName
}

var _ interfaces.Dashboard = (*Dashboard)(nil)

// NewDashboard creates a dashboard use case. A nil config uses the defaults.
func NewDashboard(snapshots interfaces.Snapshots, cfg *model.DashboardConfig) *Dashboard {
	if cfg == nil {
		cfg = model.DefaultDashboardConfig()
	}
	defaultState := cfg.DefaultState
	if defaultState == "" {
		defaultState = model.DefaultStateName
	}
	return &Dashboard{
		snapshots:    snapshots,
		defaultState: defaultState,
	}
}

// StateChartTitle is the title of the per-state panel
func StateChartTitle(state types.StateName) string {
	return fmt.Sprintf("Covid19 confirmed cases for %s", state)
}

// AllStatesChartTitle is the title of the all-states panel
func AllStatesChartTitle(rng *model.TimeRange) string {
	return fmt.Sprintf("Covid19 confirmed cases for all states (%s - %s)", rng.From.Label, rng.To.Label)
}

// Options returns the selector contents of both panels
func (d *Dashboard) Options(ctx context.Context) (*model.DashboardOptions, error) {
	snapshot, err := d.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	table := snapshot.Table

	states := table.States()
	defaultState := d.defaultState
	if !table.HasState(defaultState) {
		defaultState = ""
		if len(states) > 0 {
			defaultState = states[0]
		}
	}

	axis := table.DateAxis()
	options := &model.DashboardOptions{
		States:       states,
		DefaultState: defaultState,
		Counties:     table.Counties(defaultState),
		Dates:        axis,
		DefaultFrom:  0,
		DefaultTo:    axis.Len() - 1,
		SnapshotID:   snapshot.ID,
	}
	if options.DefaultTo < 0 {
		options.DefaultTo = 0
	}
	return options, nil
}

// Counties lists the counties of a state. An unknown state has no counties.
func (d *Dashboard) Counties(ctx context.Context, state types.StateName) ([]types.CountyName, error) {
	if state == "" {
		return nil, goerr.New("state is required", goerr.T(model.ErrTagInvalidRequest))
	}

	snapshot, err := d.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Table.Counties(state), nil
}

// StateChart aggregates the selected counties, or the whole state, over the selected range
func (d *Dashboard) StateChart(ctx context.Context, req model.StateChartRequest) (*model.SeriesSet, error) {
	// The range is checked before any data is touched
	if err := model.ValidateRange(req.FromIndex, req.ToIndex); err != nil {
		return nil, err
	}
	if req.State == "" {
		return nil, goerr.New("state is required", goerr.T(model.ErrTagInvalidRequest))
	}

	snapshot, err := d.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	table := snapshot.Table

	if !table.HasState(req.State) {
		return nil, goerr.New("state not found",
			goerr.T(model.ErrTagNotFound),
			goerr.V("state", req.State),
			goerr.V("snapshot_id", snapshot.ID))
	}

	rng, err := table.DateAxis().ResolveRange(req.FromIndex, req.ToIndex)
	if err != nil {
		return nil, err
	}

	if len(req.Counties) > 0 && !table.HasCounties(req.State, req.Counties) {
		ctxlog.From(ctx).Debug("County selection does not match the state, showing state total",
			"state", req.State,
			"counties", req.Counties,
		)
	}

	set := table.AggregateState(req.State, req.Counties, rng.From.Date, rng.To.Date)
	set.Title = StateChartTitle(req.State)
	set.XAxisTitle = model.XAxisTitle
	set.YAxisTitle = model.YAxisTitle
	set.LegendTitle = model.LegendTitleCounties
	return set, nil
}

// AllStatesChart aggregates every state over the selected range
func (d *Dashboard) AllStatesChart(ctx context.Context, req model.AllStatesChartRequest) (*model.SeriesSet, error) {
	if err := model.ValidateRange(req.FromIndex, req.ToIndex); err != nil {
		return nil, err
	}

	snapshot, err := d.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	table := snapshot.Table

	rng, err := table.DateAxis().ResolveRange(req.FromIndex, req.ToIndex)
	if err != nil {
		return nil, err
	}

	set := table.AggregateAllStates(rng.From.Date, rng.To.Date)
	set.Title = AllStatesChartTitle(rng)
	set.XAxisTitle = model.XAxisTitle
	set.YAxisTitle = model.YAxisTitle
	set.LegendTitle = model.LegendTitleStates
	return set, nil
}
