package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/domain/interfaces"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
	"github.com/secmon-lab/covidboard/pkg/utils/async"
)

// DefaultRetryInterval is the minimum wait before a stale snapshot is refreshed again after a failure
const DefaultRetryInterval = time.Minute

// SnapshotOption is a functional option for configuring Snapshot
type SnapshotOption func(*Snapshot)

// WithNotifier reports refresh failures and recoveries
func WithNotifier(notifier interfaces.Notifier) SnapshotOption {
	return func(s *Snapshot) {
		s.notifier = notifier
	}
}

// WithMaxAge makes Current refresh snapshots older than maxAge. Zero disables it.
func WithMaxAge(maxAge time.Duration) SnapshotOption {
	return func(s *Snapshot) {
		s.maxAge = maxAge
	}
}

// WithRetryInterval sets how long a failed stale refresh is not retried
func WithRetryInterval(interval time.Duration) SnapshotOption {
	return func(s *Snapshot) {
		s.retryInterval = interval
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) SnapshotOption {
	return func(s *Snapshot) {
		s.now = now
	}
}

// Snapshot holds the published raw table and refreshes it from the source
type Snapshot struct {
	source        interfaces.Source
	repo          interfaces.Repository
	notifier      interfaces.Notifier
	maxAge        time.Duration
	retryInterval time.Duration
	now           func() time.Time

	mu      sync.RWMutex
	current *model.Snapshot

	// refreshMu serializes refreshes; the fields below are guarded by it
	refreshMu   sync.Mutex
	attempts    atomic.Uint64
	failing     bool
	lastFailure time.Time
	lastErr     error
}

var _ interfaces.Snapshots = (*Snapshot)(nil)

// NewSnapshot creates a snapshot store. Nothing is fetched until Refresh or Current is called.
func NewSnapshot(source interfaces.Source, repo interfaces.Repository, opts ...SnapshotOption) *Snapshot {
	s := &Snapshot{
		source:        source,
		repo:          repo,
		retryInterval: DefaultRetryInterval,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Snapshot) load() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Snapshot) publish(snapshot *model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snapshot
}

// Current returns the published snapshot, fetching one first if none exists yet.
// A stale snapshot is refreshed when MaxAge is set and still served if that refresh fails.
func (s *Snapshot) Current(ctx context.Context) (*model.Snapshot, error) {
	if snapshot := s.load(); snapshot != nil && !s.isStale(snapshot) {
		return snapshot, nil
	}

	if err := s.ensure(ctx); err != nil {
		if snapshot := s.load(); snapshot != nil {
			ctxlog.From(ctx).Warn("Serving stale snapshot",
				"snapshot_id", snapshot.ID,
				"fetched_at", snapshot.FetchedAt,
				"error", err,
			)
			return snapshot, nil
		}
		return nil, goerr.Wrap(err, "no snapshot available", goerr.T(model.ErrTagDataUnavailable))
	}

	return s.load(), nil
}

func (s *Snapshot) isStale(snapshot *model.Snapshot) bool {
	return s.maxAge > 0 && snapshot.Age(s.now()) > s.maxAge
}

// ensure refreshes once on behalf of all callers waiting at the same time
func (s *Snapshot) ensure(ctx context.Context) error {
	seen := s.attempts.Load()

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	// Another caller refreshed while we waited for the lock
	if s.attempts.Load() != seen {
		if s.load() == nil {
			return s.lastErr
		}
		return nil
	}

	snapshot := s.load()
	trigger := types.RefreshTriggerOnDemand
	if snapshot != nil {
		if !s.isStale(snapshot) {
			return nil
		}
		if s.failing && s.now().Sub(s.lastFailure) < s.retryInterval {
			return s.lastErr
		}
		trigger = types.RefreshTriggerStale
	}

	_, err := s.refresh(ctx, trigger)
	return err
}

// Refresh fetches the source and publishes a new snapshot. On failure the previous
// snapshot stays published and the failed record is returned along with the error.
func (s *Snapshot) Refresh(ctx context.Context, trigger types.RefreshTrigger) (*model.RefreshRecord, error) {
	if !trigger.IsValid() {
		return nil, goerr.New("invalid refresh trigger",
			goerr.V("trigger", trigger),
			goerr.T(model.ErrTagInvalidRequest))
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	return s.refresh(ctx, trigger)
}

// refresh must be called with refreshMu held
func (s *Snapshot) refresh(ctx context.Context, trigger types.RefreshTrigger) (*model.RefreshRecord, error) {
	logger := ctxlog.From(ctx)
	defer s.attempts.Add(1)

	record := model.NewRefreshRecord(trigger, s.source.Name(), s.now())
	logger.Info("Refreshing dataset",
		"refresh_id", record.ID,
		"trigger", trigger,
		"source", record.Source,
	)

	table, err := s.source.Fetch(ctx)
	var snapshot *model.Snapshot
	if err == nil {
		snapshot, err = model.NewSnapshot(table, s.source.Name(), s.now())
	}

	wasFailing := s.failing
	if err != nil {
		record.Fail(err, s.now())
		s.failing = true
		s.lastFailure = record.FinishedAt
		s.lastErr = goerr.Wrap(err, "dataset refresh failed",
			goerr.V("refresh_id", record.ID),
			goerr.T(model.ErrTagDataUnavailable))

		logger.Error("Dataset refresh failed",
			"refresh_id", record.ID,
			"trigger", trigger,
			"error", err,
		)
	} else {
		s.publish(snapshot)
		record.Succeed(snapshot, s.now())
		s.failing = false
		s.lastErr = nil

		logger.Info("Dataset snapshot published",
			"refresh_id", record.ID,
			"snapshot_id", snapshot.ID,
			"rows", record.Rows,
			"latest_date", record.LatestDate,
			"duration", record.Duration(),
		)
	}

	if putErr := s.repo.PutRefresh(ctx, record); putErr != nil {
		logger.Warn("Failed to record refresh",
			"refresh_id", record.ID,
			"error", putErr,
		)
	}

	// Notify when the source starts failing and when it recovers
	if s.notifier != nil && s.failing != wasFailing {
		notifier := s.notifier
		notified := *record
		async.Dispatch(ctx, func(ctx context.Context) error {
			return notifier.NotifyRefresh(ctx, &notified)
		})
	}

	if err != nil {
		return record, s.lastErr
	}
	return record, nil
}

// History returns recent refresh records, newest first
func (s *Snapshot) History(ctx context.Context, limit int) ([]*model.RefreshRecord, error) {
	records, err := s.repo.ListRefreshes(ctx, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list refreshes", goerr.V("limit", limit))
	}
	return records, nil
}

// GetRefresh returns one refresh record. An unknown ID is tagged not found.
func (s *Snapshot) GetRefresh(ctx context.Context, id types.RefreshID) (*model.RefreshRecord, error) {
	if id == "" {
		return nil, goerr.New("refresh ID is required", goerr.T(model.ErrTagInvalidRequest))
	}

	record, err := s.repo.GetRefresh(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get refresh", goerr.V("id", id))
	}
	return record, nil
}
