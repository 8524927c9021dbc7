package cmd

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/checkmarble/heatmap-backend/infra"
	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/usecases/persistence"
	"github.com/checkmarble/heatmap-backend/utils"
)

type CompiledConfig struct {
	Version string
}

type ServerConfig struct {
	loggingFormat string
	sentryDsn     string
}

func pgConfigFromEnv() infra.PgConfig {
	return infra.PgConfig{
		ConnectionString:   utils.GetEnv("PG_CONNECTION_STRING", ""),
		Database:           utils.GetEnv("PG_DATABASE", "heatmap"),
		Hostname:           utils.GetEnv("PG_HOSTNAME", ""),
		Password:           utils.GetEnv("PG_PASSWORD", ""),
		Port:               utils.GetEnv("PG_PORT", "5432"),
		User:               utils.GetEnv("PG_USER", ""),
		MaxPoolConnections: utils.GetEnv("PG_MAX_POOL_SIZE", infra.DEFAULT_MAX_CONNECTIONS),
		SslMode:            utils.GetEnv("PG_SSL_MODE", "prefer"),
		StatementTimeout:   time.Duration(utils.GetEnv("OPERATION_TIMEOUT_SECOND", 5)) * time.Second,
	}
}

func storageConfigFromEnv() (infra.StorageConfig, error) {
	backend, err := models.StorageBackendFrom(utils.GetEnv("STORAGE_BACKEND", string(models.StorageBackendPostgres)))
	if err != nil {
		return infra.StorageConfig{}, errors.Wrapf(err, "invalid STORAGE_BACKEND")
	}
	return infra.StorageConfig{
		Backend:        backend,
		LocalBucketUrl: utils.GetEnv("LOCAL_STORAGE_BUCKET_URL", "file://./.local-storage?create_dir=true"),
	}, nil
}

func retryConfigFromEnv() infra.RetryConfig {
	return infra.RetryConfig{
		MaxAttempts:      utils.GetEnv("RETRY_MAX_ATTEMPTS", 3),
		BaseDelay:        time.Duration(utils.GetEnv("RETRY_BASE_DELAY_MS", 1000)) * time.Millisecond,
		OperationTimeout: time.Duration(utils.GetEnv("OPERATION_TIMEOUT_SECOND", 5)) * time.Second,
	}
}

func retryPolicy(config infra.RetryConfig) (persistence.RetryPolicy, error) {
	if config.MaxAttempts < 1 {
		return persistence.RetryPolicy{}, errors.Newf("RETRY_MAX_ATTEMPTS must be at least 1, got %d", config.MaxAttempts)
	}
	if config.BaseDelay < 0 || config.OperationTimeout <= 0 {
		return persistence.RetryPolicy{}, errors.New("retry delays and operation timeout must be positive")
	}
	return persistence.RetryPolicy{
		MaxAttempts:      uint(config.MaxAttempts),
		BaseDelay:        config.BaseDelay,
		OperationTimeout: config.OperationTimeout,
	}, nil
}

func splitOrigins(s string) []string {
	origins := []string{}
	for _, origin := range strings.Split(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
