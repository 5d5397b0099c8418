package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/robfig/cron/v3"
	"github.com/secmon-lab/covidboard/pkg/domain/interfaces"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
)

// DefaultRefreshSchedule refreshes the dataset four times a day
const DefaultRefreshSchedule = "@every 6h"

// Scheduler refreshes snapshots on a cron schedule
type Scheduler struct {
	cron      *cron.Cron
	snapshots interfaces.Snapshots
	schedule  string

	mu      sync.Mutex
	entryID cron.EntryID
}

// NewScheduler creates a scheduler for a standard cron expression or descriptor such as "@every 6h"
func NewScheduler(snapshots interfaces.Snapshots, schedule string) (*Scheduler, error) {
	if schedule == "" {
		return nil, goerr.New("refresh schedule is empty")
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, goerr.Wrap(err, "invalid refresh schedule", goerr.V("schedule", schedule))
	}

	return &Scheduler{
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		snapshots: snapshots,
		schedule:  schedule,
	}, nil
}

// Start registers the refresh job and starts the cron loop. The job runs with the logger of ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 {
		return goerr.New("scheduler already started")
	}

	jobCtx := ctxlog.With(context.Background(), ctxlog.From(ctx))
	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.run(jobCtx)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to add refresh job", goerr.V("schedule", s.schedule))
	}
	s.entryID = entryID
	s.cron.Start()

	ctxlog.From(ctx).Info("Refresh scheduler started",
		"schedule", s.schedule,
		"next", s.cron.Entry(entryID).Next,
	)
	return nil
}

// Stop stops the cron loop; the returned context is done once a running refresh finishes
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) run(ctx context.Context) {
	// Refresh failures are already recorded and logged by the snapshot store
	if _, err := s.snapshots.Refresh(ctx, types.RefreshTriggerSchedule); err != nil {
		ctxlog.From(ctx).Debug("Scheduled refresh failed", "error", err)
	}
}
