package repositories

import (
	"context"
	"database/sql"
	"embed"

	"github.com/cockroachdb/errors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/checkmarble/heatmap-backend/infra"
	"github.com/checkmarble/heatmap-backend/utils"
)

// embed migrations sql folder
//
//go:embed migrations/*.sql
var embedMigrations embed.FS

const migrationsFolder = "migrations"

type Migrater struct {
	pgConfig infra.PgConfig
}

func NewMigrater(pgConfig infra.PgConfig) *Migrater {
	return &Migrater{pgConfig: pgConfig}
}

func (m *Migrater) openDb(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", m.pgConfig.GetConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect to database")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "unable to ping database")
	}
	return db, nil
}

func (m *Migrater) Run(ctx context.Context) error {
	logger := utils.LoggerFromContext(ctx)

	db, err := m.openDb(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.InfoContext(ctx, "Migrations starting to setup DB: "+migrationsFolder)
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "unable to set goose dialect")
	}

	if err := goose.UpContext(ctx, db, migrationsFolder); err != nil {
		return errors.Wrap(err, "unable to run migrations")
	}
	return nil
}
