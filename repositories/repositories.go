package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/checkmarble/heatmap-backend/infra"
	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/repositories/postgres"
)

// DatasetStore is implemented by both storage backends.
type DatasetStore interface {
	// ListFiles returns every filename once, most recently uploaded first.
	ListFiles(ctx context.Context) ([]string, error)
	// ListSheets returns the named sheets of a file in ascending order.
	ListSheets(ctx context.Context, filename string) ([]string, error)
	GetContent(ctx context.Context, key models.DatasetKey) (string, error)
	Save(ctx context.Context, key models.DatasetKey, content string) error
	// Delete removes every sheet stored under the filename.
	Delete(ctx context.Context, filename string) error
	Liveness(ctx context.Context) error
}

type Repositories struct {
	Backend      models.StorageBackend
	DatasetStore DatasetStore
}

// NewRepositories builds the store selected by the configuration. The postgres pool is only
// required for the postgres backend and stays owned by the caller.
func NewRepositories(ctx context.Context, config infra.StorageConfig, pool *pgxpool.Pool) (Repositories, error) {
	switch config.Backend {
	case models.StorageBackendPostgres:
		if pool == nil {
			return Repositories{}, errors.New("the postgres backend requires a connection pool")
		}
		return Repositories{Backend: config.Backend, DatasetStore: postgres.New(pool)}, nil
	case models.StorageBackendLocal:
		store, err := OpenBlobDatasetStore(ctx, config.LocalBucketUrl)
		if err != nil {
			return Repositories{}, err
		}
		return Repositories{Backend: config.Backend, DatasetStore: store}, nil
	}
	return Repositories{}, errors.Wrapf(models.ErrUnknownStorageBackend, "%q", config.Backend)
}
