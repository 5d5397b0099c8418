package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/domain/interfaces"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu        sync.RWMutex
	refreshes map[types.RefreshID]*model.RefreshRecord
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{
		refreshes: make(map[types.RefreshID]*model.RefreshRecord),
	}
}

// PutRefresh saves a refresh record to memory
func (m *Memory) PutRefresh(ctx context.Context, record *model.RefreshRecord) error {
	if record == nil {
		return goerr.New("refresh record is nil")
	}
	if err := record.Validate(); err != nil {
		return goerr.Wrap(err, "invalid refresh record")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy to prevent external modifications
	recordCopy := *record
	m.refreshes[record.ID] = &recordCopy
	return nil
}

// GetRefresh retrieves a refresh record by ID
func (m *Memory) GetRefresh(ctx context.Context, id types.RefreshID) (*model.RefreshRecord, error) {
	if id == "" {
		return nil, goerr.New("refresh ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	record, exists := m.refreshes[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrRefreshNotFound, "failed to get refresh",
			goerr.V("id", id),
			goerr.T(model.ErrTagNotFound))
	}

	recordCopy := *record
	return &recordCopy, nil
}

// ListRefreshes lists refresh records, newest first
func (m *Memory) ListRefreshes(ctx context.Context, limit int) ([]*model.RefreshRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*model.RefreshRecord, 0, len(m.refreshes))
	for _, record := range m.refreshes {
		recordCopy := *record
		records = append(records, &recordCopy)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}

// Close is a no-op for memory repository
func (m *Memory) Close() error {
	return nil
}
