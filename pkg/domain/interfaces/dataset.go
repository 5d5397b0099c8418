//go:generate moq -out mocks/dataset_mock.go -pkg mocks . Source Notifier

package interfaces

import (
	"context"

	"github.com/secmon-lab/covidboard/pkg/domain/model"
)

// Source loads the raw confirmed-cases table
type Source interface {
	// Fetch retrieves and parses the current dataset. Failures carry model.ErrTagDataUnavailable.
	Fetch(ctx context.Context) (*model.RawTable, error)
	// Name describes where the data comes from (URL or path)
	Name() string
}

// Notifier reports refresh outcomes to operators
type Notifier interface {
	NotifyRefresh(ctx context.Context, record *model.RefreshRecord) error
}
