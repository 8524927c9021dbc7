package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmarble/heatmap-backend/infra"
	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/usecases/persistence"
)

func TestStorageConfigFromEnv(t *testing.T) {
	t.Run("defaults to postgres", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "")
		config, err := storageConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, models.StorageBackendPostgres, config.Backend)
	})

	t.Run("local", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "local")
		t.Setenv("LOCAL_STORAGE_BUCKET_URL", "mem://")
		config, err := storageConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, infra.StorageConfig{Backend: models.StorageBackendLocal, LocalBucketUrl: "mem://"}, config)
	})

	t.Run("unknown", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "mongo")
		_, err := storageConfigFromEnv()
		assert.ErrorIs(t, err, models.ErrUnknownStorageBackend)
	})
}

func TestRetryPolicy(t *testing.T) {
	t.Setenv("RETRY_MAX_ATTEMPTS", "")
	t.Setenv("RETRY_BASE_DELAY_MS", "")
	t.Setenv("OPERATION_TIMEOUT_SECOND", "")

	policy, err := retryPolicy(retryConfigFromEnv())
	require.NoError(t, err)
	assert.Equal(t, persistence.DefaultRetryPolicy(), policy)

	_, err = retryPolicy(infra.RetryConfig{MaxAttempts: 0, OperationTimeout: time.Second})
	assert.Error(t, err)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{}, splitOrigins(""))
	assert.Equal(t,
		[]string{"https://a.example.com", "http://localhost:3000"},
		splitOrigins(" https://a.example.com, ,http://localhost:3000 "))
}
