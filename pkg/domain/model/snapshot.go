package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
)

// Snapshot is one published copy of the raw table. It is never mutated after publishing.
type Snapshot struct {
	ID        types.SnapshotID
	Table     *RawTable
	Source    string
	FetchedAt time.Time
}

// NewSnapshot creates a snapshot for a freshly fetched table
func NewSnapshot(table *RawTable, source string, fetchedAt time.Time) (*Snapshot, error) {
	if table == nil {
		return nil, goerr.New("table is nil")
	}
	return &Snapshot{
		ID:        types.NewSnapshotID(),
		Table:     table,
		Source:    source,
		FetchedAt: fetchedAt,
	}, nil
}

// Age returns how long ago the snapshot was fetched
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// Info returns the serializable metadata of the snapshot
func (s *Snapshot) Info() *SnapshotInfo {
	info := &SnapshotInfo{
		ID:          s.ID,
		Source:      s.Source,
		FetchedAt:   s.FetchedAt,
		Rows:        s.Table.Rows(),
		States:      len(s.Table.States()),
		DateColumns: s.Table.DateAxis().Len(),
	}
	if axis := s.Table.DateAxis(); axis.Len() > 0 {
		info.FirstDate = axis[0].Label
		info.LatestDate = axis[axis.Len()-1].Label
	}
	return info
}

// SnapshotInfo describes a snapshot without its data
type SnapshotInfo struct {
	ID          types.SnapshotID `json:"id"`
	Source      string           `json:"source"`
	FetchedAt   time.Time        `json:"fetched_at"`
	Rows        int              `json:"rows"`
	States      int              `json:"states"`
	DateColumns int              `json:"date_columns"`
	FirstDate   string           `json:"first_date,omitempty"`
	LatestDate  string           `json:"latest_date,omitempty"`
}

// RefreshRecord is the persisted outcome of one refresh attempt
type RefreshRecord struct {
	ID          types.RefreshID      `json:"id" firestore:"id"`
	SnapshotID  types.SnapshotID     `json:"snapshot_id,omitempty" firestore:"snapshot_id"`
	Trigger     types.RefreshTrigger `json:"trigger" firestore:"trigger"`
	Status      types.RefreshStatus  `json:"status" firestore:"status"`
	Source      string               `json:"source" firestore:"source"`
	Rows        int                  `json:"rows" firestore:"rows"`
	DateColumns int                  `json:"date_columns" firestore:"date_columns"`
	LatestDate  string               `json:"latest_date,omitempty" firestore:"latest_date"`
	Error       string               `json:"error,omitempty" firestore:"error"`
	StartedAt   time.Time            `json:"started_at" firestore:"started_at"`
	FinishedAt  time.Time            `json:"finished_at" firestore:"finished_at"`
}

// NewRefreshRecord starts a record for a refresh attempt
func NewRefreshRecord(trigger types.RefreshTrigger, source string, startedAt time.Time) *RefreshRecord {
	return &RefreshRecord{
		ID:        types.NewRefreshID(),
		Trigger:   trigger,
		Source:    source,
		StartedAt: startedAt,
	}
}

// Succeed marks the record as successful for the published snapshot
func (r *RefreshRecord) Succeed(snapshot *Snapshot, finishedAt time.Time) {
	info := snapshot.Info()
	r.Status = types.RefreshStatusSucceeded
	r.SnapshotID = snapshot.ID
	r.Rows = info.Rows
	r.DateColumns = info.DateColumns
	r.LatestDate = info.LatestDate
	r.FinishedAt = finishedAt
}

// Fail marks the record as failed
func (r *RefreshRecord) Fail(err error, finishedAt time.Time) {
	r.Status = types.RefreshStatusFailed
	r.Error = err.Error()
	r.FinishedAt = finishedAt
}

// Duration returns how long the attempt took
func (r *RefreshRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Validate validates the record before it is stored
func (r *RefreshRecord) Validate() error {
	if r.ID == "" {
		return goerr.New("refresh ID is empty")
	}
	if !r.Trigger.IsValid() {
		return goerr.New("invalid refresh trigger", goerr.V("trigger", r.Trigger))
	}
	if !r.Status.IsValid() {
		return goerr.New("invalid refresh status", goerr.V("status", r.Status))
	}
	return nil
}
