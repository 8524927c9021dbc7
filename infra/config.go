package infra

import (
	"fmt"
	"time"

	"github.com/checkmarble/heatmap-backend/models"
)

type PgConfig struct {
	ConnectionString    string
	Database            string
	DbConnectWithSocket bool
	Hostname            string
	Password            string
	Port                string
	User                string
	MaxPoolConnections  int
	SslMode             string
	// StatementTimeout bounds every statement on the server side.
	StatementTimeout time.Duration
}

func (config PgConfig) GetConnectionString() string {
	if config.ConnectionString != "" {
		return config.ConnectionString
	}

	if config.SslMode == "" {
		config.SslMode = "prefer"
	}

	connectionString := fmt.Sprintf("host=%s user=%s password=%s database=%s sslmode=%s",
		config.Hostname, config.User, config.Password, config.Database, config.SslMode)
	if !config.DbConnectWithSocket {
		// connecting through a unix socket does not take a port
		connectionString = fmt.Sprintf("%s port=%s", connectionString, config.Port)
	}
	return connectionString
}

type StorageConfig struct {
	Backend        models.StorageBackend
	LocalBucketUrl string
}

type RetryConfig struct {
	MaxAttempts      int
	BaseDelay        time.Duration
	OperationTimeout time.Duration
}
