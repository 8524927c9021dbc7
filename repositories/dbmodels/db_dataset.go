package dbmodels

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/checkmarble/heatmap-backend/models"
)

type DBDataset struct {
	Id         int64       `db:"id"`
	Filename   string      `db:"filename"`
	SheetName  null.String `db:"sheet_name"`
	Content    string      `db:"content"`
	UploadedAt time.Time   `db:"uploaded_at"`
}

type DBDatasetFile struct {
	Filename       string    `db:"filename"`
	LastUploadedAt time.Time `db:"last_uploaded_at"`
}

const TABLE_DATASETS = "csv_files"

var SelectDatasetColumn = []string{"id", "filename", "sheet_name", "content", "uploaded_at"}

func AdaptDataset(db DBDataset) (models.Dataset, error) {
	return models.Dataset{
		DatasetKey: models.DatasetKey{
			Filename: db.Filename,
			Sheet:    db.SheetName.ValueOrZero(),
		},
		Content:    db.Content,
		UploadedAt: db.UploadedAt,
	}, nil
}

func AdaptDatasetFilename(db DBDatasetFile) string {
	return db.Filename
}
