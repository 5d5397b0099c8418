package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/domain/interfaces"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	refreshesCollection = "refreshes"

	fieldStartedAt = "started_at"
)

// Firestore implements Repository interface with Firestore
type Firestore struct {
	client *firestore.Client
}

// NewFirestore opens the refresh history in the given project and database.
// It fails when the credentials cannot read the collection.
func NewFirestore(ctx context.Context, projectID, databaseID string) (interfaces.Repository, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID),
			goerr.V("database", databaseID))
	}

	if err := probe(ctx, client); err != nil {
		_ = client.Close()
		return nil, goerr.Wrap(err, "firestore is not accessible",
			goerr.V("project", projectID),
			goerr.V("database", databaseID))
	}

	ctxlog.From(ctx).Info("Refresh history stored in Firestore",
		"project", projectID,
		"database", databaseID,
		"collection", refreshesCollection,
	)
	return &Firestore{client: client}, nil
}

// probe reads at most one record. Only auth errors are fatal.
func probe(ctx context.Context, client *firestore.Client) error {
	iter := client.Collection(refreshesCollection).Limit(1).Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	switch code := status.Code(err); {
	case err == nil, err == iterator.Done:
		return nil
	case code == codes.PermissionDenied, code == codes.Unauthenticated:
		return goerr.Wrap(err, "permission check failed", goerr.V("code", code.String()))
	default:
		ctxlog.From(ctx).Debug("Firestore probe failed", "error", err, "code", code.String())
		return nil
	}
}

// PutRefresh saves a refresh record to Firestore
func (f *Firestore) PutRefresh(ctx context.Context, record *model.RefreshRecord) error {
	if record == nil {
		return goerr.New("refresh record is nil")
	}
	if err := record.Validate(); err != nil {
		return goerr.Wrap(err, "invalid refresh record")
	}

	_, err := f.client.Collection(refreshesCollection).Doc(record.ID.String()).Set(ctx, record)
	if err != nil {
		return goerr.Wrap(err, "failed to save refresh to firestore", goerr.V("id", record.ID))
	}

	return nil
}

// GetRefresh retrieves a refresh record by ID
func (f *Firestore) GetRefresh(ctx context.Context, id types.RefreshID) (*model.RefreshRecord, error) {
	if id == "" {
		return nil, goerr.New("refresh ID is empty")
	}

	doc, err := f.client.Collection(refreshesCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrRefreshNotFound, "failed to get refresh",
				goerr.V("id", id),
				goerr.T(model.ErrTagNotFound))
		}
		return nil, goerr.Wrap(err, "failed to get refresh from firestore")
	}

	var record model.RefreshRecord
	if err := doc.DataTo(&record); err != nil {
		return nil, goerr.Wrap(err, "failed to decode refresh")
	}

	return &record, nil
}

// ListRefreshes lists refresh records, newest first
func (f *Firestore) ListRefreshes(ctx context.Context, limit int) ([]*model.RefreshRecord, error) {
	query := f.client.Collection(refreshesCollection).OrderBy(fieldStartedAt, firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var records []*model.RefreshRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate refreshes")
		}

		var record model.RefreshRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, goerr.Wrap(err, "failed to decode refresh")
		}
		records = append(records, &record)
	}

	return records, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	return f.client.Close()
}
