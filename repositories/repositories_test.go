package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmarble/heatmap-backend/infra"
	"github.com/checkmarble/heatmap-backend/models"
)

func TestNewRepositories(t *testing.T) {
	ctx := context.Background()

	t.Run("local backend", func(t *testing.T) {
		repositories, err := NewRepositories(ctx, infra.StorageConfig{
			Backend:        models.StorageBackendLocal,
			LocalBucketUrl: "mem://",
		}, nil)
		require.NoError(t, err)
		assert.IsType(t, &BlobDatasetStore{}, repositories.DatasetStore)
	})

	t.Run("postgres backend without a pool", func(t *testing.T) {
		_, err := NewRepositories(ctx, infra.StorageConfig{Backend: models.StorageBackendPostgres}, nil)
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := NewRepositories(ctx, infra.StorageConfig{Backend: "redis"}, nil)
		assert.ErrorIs(t, err, models.ErrUnknownStorageBackend)
	})
}
