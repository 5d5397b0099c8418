package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/cli/config"
	controller "github.com/secmon-lab/covidboard/pkg/controller/http"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
	"github.com/secmon-lab/covidboard/pkg/service/chart"
	"github.com/secmon-lab/covidboard/pkg/service/export"
	"github.com/secmon-lab/covidboard/pkg/usecase"
	"github.com/secmon-lab/covidboard/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		datasetCfg   config.Dataset
		dashboardCfg config.Dashboard
		slackCfg     config.Slack
		firestoreCfg config.Firestore
	)

	flags := joinFlags(
		&serverCfg,
		&datasetCfg,
		&dashboardCfg,
		&slackCfg,
		&firestoreCfg,
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start the dashboard HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting covidboard server",
				slog.Any("server", serverCfg),
				slog.Any("dataset", datasetCfg),
				slog.Any("dashboard", dashboardCfg),
				slog.Any("slack", slackCfg),
				slog.Any("firestore", firestoreCfg),
			)

			repo, err := firestoreCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			dashboardConfig, err := dashboardCfg.Configure()
			if err != nil {
				return err
			}

			source, err := datasetCfg.Configure()
			if err != nil {
				return err
			}

			snapshotOpts := datasetCfg.SnapshotOptions()
			if notifier := slackCfg.ConfigureOptional(logger); notifier != nil {
				snapshotOpts = append(snapshotOpts, usecase.WithNotifier(notifier))
			}
			snapshots := usecase.NewSnapshot(source, repo, snapshotOpts...)

			// The first download can be slow; requests arriving before it finishes wait for it
			async.Dispatch(ctx, func(ctx context.Context) error {
				if _, err := snapshots.Refresh(ctx, types.RefreshTriggerStartup); err != nil {
					ctxlog.From(ctx).Warn("Initial dataset refresh failed, retrying on demand", "error", err)
				}
				return nil
			})

			if datasetCfg.RefreshSchedule != "" {
				scheduler, err := usecase.NewScheduler(snapshots, datasetCfg.RefreshSchedule)
				if err != nil {
					return err
				}
				if err := scheduler.Start(ctx); err != nil {
					return err
				}
				defer scheduler.Stop()
			}

			dashboardUC := usecase.NewDashboard(snapshots, dashboardConfig)
			uc := controller.NewUseCases(
				dashboardUC,
				snapshots,
				chart.New(dashboardConfig.Chart),
				export.NewExcelExporter(),
			)
			server := controller.NewServer(ctx, serverCfg.Addr, uc)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				return goerr.Wrap(err, "HTTP server failed", goerr.V("addr", serverCfg.Addr))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
