package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/covidboard/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
	"github.com/secmon-lab/covidboard/pkg/repository"
	"github.com/secmon-lab/covidboard/pkg/usecase"
)

var errUpstream = goerr.New("upstream returned 502")

func TestSnapshot_CurrentFetchesOnce(t *testing.T) {
	ctx := context.Background()
	source := newSource(t)
	repo := repository.NewMemory()
	uc := usecase.NewSnapshot(source, repo)

	first, err := uc.Current(ctx)
	gt.NoError(t, err).Required()
	gt.Equal(t, first.Table.Rows(), 4)
	gt.Equal(t, first.Source, testSourceName)

	second, err := uc.Current(ctx)
	gt.NoError(t, err).Required()
	gt.Equal(t, second.ID, first.ID)
	gt.A(t, source.FetchCalls()).Length(1)

	records, err := uc.History(ctx, 10)
	gt.NoError(t, err).Required()
	gt.A(t, records).Length(1)
	gt.Equal(t, records[0].Trigger, types.RefreshTriggerOnDemand)
	gt.Equal(t, records[0].Status, types.RefreshStatusSucceeded)
	gt.Equal(t, records[0].SnapshotID, first.ID)
	gt.Equal(t, records[0].LatestDate, "25 Jan, 2020")
}

func TestSnapshot_CurrentConcurrent(t *testing.T) {
	ctx := context.Background()
	source := newSource(t)
	uc := usecase.NewSnapshot(source, repository.NewMemory())

	var wg sync.WaitGroup
	ids := make([]types.SnapshotID, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snapshot, err := uc.Current(ctx)
			if err == nil {
				ids[i] = snapshot.ID
			}
		}(i)
	}
	wg.Wait()

	gt.A(t, source.FetchCalls()).Length(1)
	for _, id := range ids {
		gt.Equal(t, id, ids[0])
	}
}

func TestSnapshot_Unavailable(t *testing.T) {
	ctx := context.Background()
	source := &mocks.SourceMock{
		FetchFunc: func(ctx context.Context) (*model.RawTable, error) {
			return nil, errUpstream
		},
		NameFunc: func() string { return testSourceName },
	}
	repo := repository.NewMemory()
	uc := usecase.NewSnapshot(source, repo)

	_, err := uc.Current(ctx)
	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, model.ErrTagDataUnavailable)).True()

	records, err := repo.ListRefreshes(ctx, 0)
	gt.NoError(t, err).Required()
	gt.A(t, records).Length(1)
	gt.Equal(t, records[0].Status, types.RefreshStatusFailed)
	gt.S(t, records[0].Error).Contains("upstream returned 502")
}

func TestSnapshot_RefreshKeepsLastKnownGood(t *testing.T) {
	ctx := context.Background()
	failing := false
	source := &mocks.SourceMock{
		FetchFunc: func(ctx context.Context) (*model.RawTable, error) {
			if failing {
				return nil, errUpstream
			}
			return newTable(t), nil
		},
		NameFunc: func() string { return testSourceName },
	}
	uc := usecase.NewSnapshot(source, repository.NewMemory())

	record, err := uc.Refresh(ctx, types.RefreshTriggerStartup)
	gt.NoError(t, err).Required()
	gt.Equal(t, record.Status, types.RefreshStatusSucceeded)
	gt.Equal(t, record.Rows, 4)
	gt.Equal(t, record.DateColumns, 4)

	failing = true
	failed, err := uc.Refresh(ctx, types.RefreshTriggerManual)
	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, model.ErrTagDataUnavailable)).True()
	gt.V(t, failed).NotNil()
	gt.Equal(t, failed.Status, types.RefreshStatusFailed)
	gt.Equal(t, failed.Trigger, types.RefreshTriggerManual)

	current, err := uc.Current(ctx)
	gt.NoError(t, err).Required()
	gt.Equal(t, current.ID, record.SnapshotID)
}

func TestSnapshot_RefreshInvalidTrigger(t *testing.T) {
	uc := usecase.NewSnapshot(newSource(t), repository.NewMemory())
	_, err := uc.Refresh(context.Background(), types.RefreshTrigger("cosmic_ray"))
	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, model.ErrTagInvalidRequest)).True()
}

func TestSnapshot_GetRefresh(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSnapshot(newSource(t), repository.NewMemory())

	record, err := uc.Refresh(ctx, types.RefreshTriggerManual)
	gt.NoError(t, err).Required()

	t.Run("recorded refresh", func(t *testing.T) {
		got, err := uc.GetRefresh(ctx, record.ID)
		gt.NoError(t, err).Required()
		gt.Equal(t, got.ID, record.ID)
		gt.Equal(t, got.SnapshotID, record.SnapshotID)
		gt.Equal(t, got.Trigger, types.RefreshTriggerManual)
	})

	t.Run("unknown ID", func(t *testing.T) {
		_, err := uc.GetRefresh(ctx, types.NewRefreshID())
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagNotFound)).True()
	})

	t.Run("empty ID", func(t *testing.T) {
		_, err := uc.GetRefresh(ctx, "")
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagInvalidRequest)).True()
	})
}

func TestSnapshot_MaxAge(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC)
	failing := false
	source := &mocks.SourceMock{
		FetchFunc: func(ctx context.Context) (*model.RawTable, error) {
			if failing {
				return nil, errUpstream
			}
			return newTable(t), nil
		},
		NameFunc: func() string { return testSourceName },
	}
	repo := repository.NewMemory()
	uc := usecase.NewSnapshot(source, repo,
		usecase.WithMaxAge(time.Hour),
		usecase.WithRetryInterval(10*time.Minute),
		usecase.WithClock(func() time.Time { return now }),
	)

	first, err := uc.Current(ctx)
	gt.NoError(t, err).Required()

	t.Run("fresh snapshot is reused", func(t *testing.T) {
		now = now.Add(30 * time.Minute)
		current, err := uc.Current(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, current.ID, first.ID)
		gt.A(t, source.FetchCalls()).Length(1)
	})

	var second *model.Snapshot
	t.Run("stale snapshot is refreshed", func(t *testing.T) {
		now = now.Add(time.Hour)
		current, err := uc.Current(ctx)
		gt.NoError(t, err).Required()
		gt.V(t, current.ID).NotEqual(first.ID)
		gt.A(t, source.FetchCalls()).Length(2)
		second = current

		records, err := repo.ListRefreshes(ctx, 1)
		gt.NoError(t, err).Required()
		gt.Equal(t, records[0].Trigger, types.RefreshTriggerStale)
	})

	t.Run("stale snapshot is served when refresh fails", func(t *testing.T) {
		failing = true
		now = now.Add(2 * time.Hour)
		current, err := uc.Current(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, current.ID, second.ID)
		gt.A(t, source.FetchCalls()).Length(3)

		// within the retry interval the source is left alone
		now = now.Add(time.Minute)
		_, err = uc.Current(ctx)
		gt.NoError(t, err)
		gt.A(t, source.FetchCalls()).Length(3)

		now = now.Add(10 * time.Minute)
		_, err = uc.Current(ctx)
		gt.NoError(t, err)
		gt.A(t, source.FetchCalls()).Length(4)
	})
}

func TestSnapshot_NotifiesTransitions(t *testing.T) {
	ctx := context.Background()
	failing := true
	source := &mocks.SourceMock{
		FetchFunc: func(ctx context.Context) (*model.RawTable, error) {
			if failing {
				return nil, errUpstream
			}
			return newTable(t), nil
		},
		NameFunc: func() string { return testSourceName },
	}

	notified := make(chan *model.RefreshRecord, 4)
	notifier := &mocks.NotifierMock{
		NotifyRefreshFunc: func(ctx context.Context, record *model.RefreshRecord) error {
			notified <- record
			return nil
		},
	}
	uc := usecase.NewSnapshot(source, repository.NewMemory(), usecase.WithNotifier(notifier))

	receive := func(t *testing.T) *model.RefreshRecord {
		t.Helper()
		select {
		case record := <-notified:
			return record
		case <-time.After(3 * time.Second):
			t.Fatal("notification was not sent")
			return nil
		}
	}

	_, err := uc.Refresh(ctx, types.RefreshTriggerStartup)
	gt.Error(t, err)
	gt.Equal(t, receive(t).Status, types.RefreshStatusFailed)

	// still failing: no second alert
	_, err = uc.Refresh(ctx, types.RefreshTriggerSchedule)
	gt.Error(t, err)

	failing = false
	_, err = uc.Refresh(ctx, types.RefreshTriggerSchedule)
	gt.NoError(t, err)
	recovered := receive(t)
	gt.Equal(t, recovered.Status, types.RefreshStatusSucceeded)
	gt.Equal(t, recovered.Trigger, types.RefreshTriggerSchedule)

	select {
	case record := <-notified:
		t.Fatalf("unexpected notification: %v", record.Status)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSnapshot_RepositoryErrorIsIgnored(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.RepositoryMock{
		PutRefreshFunc: func(ctx context.Context, record *model.RefreshRecord) error {
			return goerr.New("firestore unavailable")
		},
	}
	uc := usecase.NewSnapshot(newSource(t), repo)

	record, err := uc.Refresh(ctx, types.RefreshTriggerStartup)
	gt.NoError(t, err).Required()
	gt.Equal(t, record.Status, types.RefreshStatusSucceeded)
	gt.A(t, repo.PutRefreshCalls()).Length(1)

	_, err = uc.Current(ctx)
	gt.NoError(t, err)
}
