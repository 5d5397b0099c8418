//go:generate moq -out mocks/repository_mock.go -pkg mocks . Repository

package interfaces

import (
	"context"

	"github.com/secmon-lab/covidboard/pkg/domain/model"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
)

// Repository defines the interface for refresh history persistence
type Repository interface {
	// PutRefresh saves a refresh record, replacing any record with the same ID
	PutRefresh(ctx context.Context, record *model.RefreshRecord) error
	GetRefresh(ctx context.Context, id types.RefreshID) (*model.RefreshRecord, error)
	// ListRefreshes returns records newest first; limit <= 0 means no limit
	ListRefreshes(ctx context.Context, limit int) ([]*model.RefreshRecord, error)

	// Close closes the repository connection
	Close() error
}
