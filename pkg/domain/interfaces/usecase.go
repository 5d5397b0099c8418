package interfaces

import (
	"context"

	"github.com/secmon-lab/covidboard/pkg/domain/model"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
)

// Snapshots provides the current raw table snapshot and refreshes it
type Snapshots interface {
	Current(ctx context.Context) (*model.Snapshot, error)
	Refresh(ctx context.Context, trigger types.RefreshTrigger) (*model.RefreshRecord, error)
	History(ctx context.Context, limit int) ([]*model.RefreshRecord, error)
	GetRefresh(ctx context.Context, id types.RefreshID) (*model.RefreshRecord, error)
}

// Dashboard implements the two dashboard panels
type Dashboard interface {
	Options(ctx context.Context) (*model.DashboardOptions, error)
	Counties(ctx context.Context, state types.StateName) ([]types.CountyName, error)
	StateChart(ctx context.Context, req model.StateChartRequest) (*model.SeriesSet, error)
	AllStatesChart(ctx context.Context, req model.AllStatesChartRequest) (*model.SeriesSet, error)
}
