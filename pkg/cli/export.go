package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/cli/config"
	"github.com/secmon-lab/covidboard/pkg/domain/interfaces"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
	"github.com/secmon-lab/covidboard/pkg/repository"
	"github.com/secmon-lab/covidboard/pkg/service/chart"
	"github.com/secmon-lab/covidboard/pkg/service/export"
	"github.com/secmon-lab/covidboard/pkg/usecase"
	"github.com/urfave/cli/v3"
)

type exportOptions struct {
	Output   string
	State    string
	Counties []string
	From     int
	To       int
}

func (o *exportOptions) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file (.xlsx or .png); - writes a workbook to stdout",
			Category:    "Export",
			Required:    true,
			Destination: &o.Output,
		},
		&cli.StringFlag{
			Name:        "state",
			Usage:       "Export one state instead of all states",
			Category:    "Export",
			Destination: &o.State,
		},
		&cli.StringSliceFlag{
			Name:        "county",
			Usage:       "County of --state to include (repeatable, default is the state total)",
			Category:    "Export",
			Destination: &o.Counties,
		},
		&cli.IntFlag{
			Name:        "from",
			Usage:       "Position of the first date",
			Category:    "Export",
			Value:       0,
			Destination: &o.From,
		},
		&cli.IntFlag{
			Name:        "to",
			Usage:       "Position of the last date (-1 is the latest date)",
			Category:    "Export",
			Value:       -1,
			Destination: &o.To,
		},
	}
}

func (o *exportOptions) isPNG() bool {
	return strings.EqualFold(filepath.Ext(o.Output), ".png")
}

func cmdExport() *cli.Command {
	var (
		datasetCfg   config.Dataset
		dashboardCfg config.Dashboard
		opts         exportOptions
	)

	return &cli.Command{
		Name:  "export",
		Usage: "Fetch the dataset once and write a chart or workbook",
		Flags: joinFlags(
			flagFunc(datasetCfg.SourceFlags),
			&dashboardCfg,
			&opts,
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			dashboardConfig, err := dashboardCfg.Configure()
			if err != nil {
				return err
			}
			source, err := datasetCfg.Configure()
			if err != nil {
				return err
			}

			snapshots := usecase.NewSnapshot(source, repository.NewMemory())
			if _, err := snapshots.Refresh(ctx, types.RefreshTriggerOnDemand); err != nil {
				return err
			}
			dashboard := usecase.NewDashboard(snapshots, dashboardConfig)

			set, err := exportSeries(ctx, dashboard, &opts)
			if err != nil {
				return err
			}

			write := export.NewExcelExporter().Export
			if opts.isPNG() {
				write = chart.New(dashboardConfig.Chart).RenderPNG
			}

			if err := writeOutput(opts.Output, func(w io.Writer) error {
				return write(w, set)
			}); err != nil {
				return err
			}

			logger.Info("Export completed",
				slog.String("output", opts.Output),
				slog.String("title", set.Title),
				slog.Int("series", len(set.Series)),
				slog.Int("dates", set.Dates.Len()),
			)
			return nil
		},
	}
}

func exportSeries(ctx context.Context, dashboard interfaces.Dashboard, opts *exportOptions) (*model.SeriesSet, error) {
	to := opts.To
	if to < 0 {
		options, err := dashboard.Options(ctx)
		if err != nil {
			return nil, err
		}
		to = options.Dates.Len() + to
	}

	if opts.State == "" {
		if len(opts.Counties) > 0 {
			return nil, goerr.New("--county requires --state")
		}
		return dashboard.AllStatesChart(ctx, model.AllStatesChartRequest{FromIndex: opts.From, ToIndex: to})
	}

	counties := make([]types.CountyName, len(opts.Counties))
	for i, c := range opts.Counties {
		counties[i] = types.CountyName(c)
	}
	return dashboard.StateChart(ctx, model.StateChartRequest{
		State:     types.StateName(opts.State),
		Counties:  counties,
		FromIndex: opts.From,
		ToIndex:   to,
	})
}

func writeOutput(path string, write func(w io.Writer) error) error {
	if path == "-" {
		return write(os.Stdout)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return goerr.Wrap(err, "failed to create output file", goerr.V("path", path))
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return goerr.Wrap(err, "failed to close output file", goerr.V("path", path))
	}
	return nil
}
