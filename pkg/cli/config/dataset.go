package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/domain/interfaces"
	"github.com/secmon-lab/covidboard/pkg/service/dataset"
	"github.com/secmon-lab/covidboard/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Dataset holds where the raw table comes from and how often it is refreshed
type Dataset struct {
	URL             string
	File            string
	Timeout         time.Duration
	RefreshSchedule string
	MaxAge          time.Duration
}

// Flags returns CLI flags for Dataset configuration
func (d *Dataset) Flags() []cli.Flag {
	return append(d.SourceFlags(), d.refreshFlags()...)
}

// SourceFlags returns only the flags selecting the dataset source
func (d *Dataset) SourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dataset-url",
			Usage:       "URL of the confirmed-cases time series CSV",
			Category:    "Dataset",
			Value:       dataset.DefaultURL,
			Sources:     cli.EnvVars("COVIDBOARD_DATASET_URL"),
			Destination: &d.URL,
		},
		&cli.StringFlag{
			Name:        "dataset-file",
			Usage:       "Local CSV file used instead of the URL",
			Category:    "Dataset",
			Sources:     cli.EnvVars("COVIDBOARD_DATASET_FILE"),
			Destination: &d.File,
		},
		&cli.DurationFlag{
			Name:        "dataset-timeout",
			Usage:       "Timeout of a single download",
			Category:    "Dataset",
			Value:       dataset.DefaultTimeout,
			Sources:     cli.EnvVars("COVIDBOARD_DATASET_TIMEOUT"),
			Destination: &d.Timeout,
		},
	}
}

func (d *Dataset) refreshFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "refresh-schedule",
			Usage:       "Cron expression of scheduled refreshes (empty disables)",
			Category:    "Dataset",
			Value:       usecase.DefaultRefreshSchedule,
			Sources:     cli.EnvVars("COVIDBOARD_REFRESH_SCHEDULE"),
			Destination: &d.RefreshSchedule,
		},
		&cli.DurationFlag{
			Name:        "max-age",
			Usage:       "Refresh on request when the snapshot is older than this (0 disables)",
			Category:    "Dataset",
			Sources:     cli.EnvVars("COVIDBOARD_MAX_AGE"),
			Destination: &d.MaxAge,
		},
	}
}

// Configure creates the dataset source. A file takes precedence over the URL.
func (d *Dataset) Configure() (interfaces.Source, error) {
	if d.File != "" {
		return dataset.NewFileSource(d.File), nil
	}
	if d.URL == "" {
		return nil, goerr.New("dataset URL or file is required")
	}
	if d.Timeout <= 0 {
		return nil, goerr.New("dataset timeout must be positive", goerr.V("timeout", d.Timeout))
	}
	return dataset.NewHTTPSource(d.URL, dataset.WithTimeout(d.Timeout)), nil
}

// SnapshotOptions returns the refresh policy options of the snapshot store
func (d *Dataset) SnapshotOptions() []usecase.SnapshotOption {
	var opts []usecase.SnapshotOption
	if d.MaxAge > 0 {
		opts = append(opts, usecase.WithMaxAge(d.MaxAge))
	}
	return opts
}

// LogValue returns structured log value
func (d Dataset) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", d.URL),
		slog.String("file", d.File),
		slog.Duration("timeout", d.Timeout),
		slog.String("refresh_schedule", d.RefreshSchedule),
		slog.Duration("max_age", d.MaxAge),
	)
}
