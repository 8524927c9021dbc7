package infra

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DEFAULT_MAX_CONNECTIONS = 20
	MAX_CONN_IDLE_TIME      = 30 * time.Second
	CONNECT_TIMEOUT         = 10 * time.Second
)

// NewPostgresConnectionPool creates the pool the caller owns and must close on shutdown.
func NewPostgresConnectionPool(ctx context.Context, config PgConfig) (*pgxpool.Pool, error) {
	cfg, err := postgresPoolConfig(config)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create connection pool")
	}
	return pool, nil
}

func postgresPoolConfig(config PgConfig) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(config.GetConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "create connection pool")
	}

	cfg.ConnConfig.Tracer = otelpgx.NewTracer()
	cfg.ConnConfig.ConnectTimeout = CONNECT_TIMEOUT
	if config.StatementTimeout > 0 {
		cfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(config.StatementTimeout.Milliseconds(), 10)
	}

	cfg.MaxConns = DEFAULT_MAX_CONNECTIONS
	if config.MaxPoolConnections > 0 {
		cfg.MaxConns = int32(config.MaxPoolConnections)
	}
	cfg.MaxConnIdleTime = MAX_CONN_IDLE_TIME

	return cfg, nil
}
