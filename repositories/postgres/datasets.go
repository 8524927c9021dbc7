package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/repositories/dbmodels"
)

func (db *Database) ListFiles(ctx context.Context) ([]string, error) {
	query := NewQueryBuilder().
		Select("filename", "MAX(uploaded_at) AS last_uploaded_at").
		From(dbmodels.TABLE_DATASETS).
		GroupBy("filename").
		OrderBy("last_uploaded_at DESC", "filename")

	return sqlToListOfModels(ctx, db.pool, query, func(row dbmodels.DBDatasetFile) (string, error) {
		return dbmodels.AdaptDatasetFilename(row), nil
	})
}

func (db *Database) ListSheets(ctx context.Context, filename string) ([]string, error) {
	sql, args, err := NewQueryBuilder().
		Select("sheet_name").
		Distinct().
		From(dbmodels.TABLE_DATASETS).
		Where(squirrel.Eq{"filename": filename}).
		Where(squirrel.NotEq{"sheet_name": nil}).
		OrderBy("sheet_name").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing sql query")
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (db *Database) GetContent(ctx context.Context, key models.DatasetKey) (string, error) {
	filter := squirrel.Eq{"filename": key.Filename, "sheet_name": nil}
	if key.HasSheet() {
		filter["sheet_name"] = key.Sheet
	}

	query := NewQueryBuilder().
		Select(dbmodels.SelectDatasetColumn...).
		From(dbmodels.TABLE_DATASETS).
		Where(filter).
		Limit(1)

	dataset, err := sqlToModel(ctx, db.pool, query, dbmodels.AdaptDataset)
	if err != nil {
		return "", err
	}
	return dataset.Content, nil
}

// Save inserts the content or, when the key already exists, overwrites it and refreshes its upload time.
func (db *Database) Save(ctx context.Context, key models.DatasetKey, content string) error {
	sql, args, err := NewQueryBuilder().
		Insert(dbmodels.TABLE_DATASETS).
		Columns("filename", "sheet_name", "content", "uploaded_at").
		Values(key.Filename, key.NullSheet(), content, squirrel.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT (filename, sheet_name) DO UPDATE SET content = EXCLUDED.content, uploaded_at = EXCLUDED.uploaded_at").
		ToSql()
	if err != nil {
		return errors.Wrap(err, "can't build sql query")
	}

	_, err = db.pool.Exec(ctx, sql, args...)
	return errors.Wrapf(err, "error saving %s", key.Filename)
}

func (db *Database) Delete(ctx context.Context, filename string) error {
	sql, args, err := NewQueryBuilder().
		Delete(dbmodels.TABLE_DATASETS).
		Where(squirrel.Eq{"filename": filename}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "can't build sql query")
	}

	_, err = db.pool.Exec(ctx, sql, args...)
	return errors.Wrapf(err, "error deleting %s", filename)
}

func (db *Database) Liveness(ctx context.Context) error {
	var result int
	if err := db.pool.QueryRow(ctx, "SELECT 1").Scan(&result); err != nil {
		return errors.Wrap(err, "database is not reachable")
	}
	return nil
}
