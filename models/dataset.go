package models

import (
	"time"

	"github.com/guregu/null/v5"
)

// DatasetKey identifies a stored table. An empty Sheet stands for a single sheet (plain CSV) upload.
type DatasetKey struct {
	Filename string
	Sheet    string
}

func (k DatasetKey) HasSheet() bool {
	return k.Sheet != ""
}

func (k DatasetKey) NullSheet() null.String {
	return null.NewString(k.Sheet, k.Sheet != "")
}

type Dataset struct {
	DatasetKey
	Content    string
	UploadedAt time.Time
}

type FileSheets struct {
	Filename string
	Sheets   []string
}

type StorageBackend string

const (
	StorageBackendPostgres StorageBackend = "postgres"
	StorageBackendLocal    StorageBackend = "local"
)

func StorageBackendFrom(s string) (StorageBackend, error) {
	switch StorageBackend(s) {
	case StorageBackendPostgres, "":
		return StorageBackendPostgres, nil
	case StorageBackendLocal:
		return StorageBackendLocal, nil
	}
	return "", ErrUnknownStorageBackend
}

type UploadInput struct {
	Filename string
	Content  []byte
}

type UploadResult struct {
	Filename string
	// Sheets holds one null entry for a single sheet upload.
	Sheets []null.String
}
