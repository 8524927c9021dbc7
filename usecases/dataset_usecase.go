package usecases

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
	"golang.org/x/sync/errgroup"

	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/usecases/heatmap"
	"github.com/checkmarble/heatmap-backend/usecases/table_parser"
	"github.com/checkmarble/heatmap-backend/utils"
)

const listSheetsConcurrency = 4

type datasetGateway interface {
	ListFiles(ctx context.Context) ([]string, error)
	ListSheets(ctx context.Context, filename string) ([]string, error)
	GetContent(ctx context.Context, key models.DatasetKey) (string, error)
	Save(ctx context.Context, key models.DatasetKey, content string) error
	Delete(ctx context.Context, filename string) error
}

type DatasetUsecase struct {
	gateway datasetGateway
}

type uploadFormat int

const (
	uploadFormatCSV uploadFormat = iota
	uploadFormatWorkbook
)

func uploadFormatOf(filename string) (uploadFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return uploadFormatCSV, nil
	case ".xlsx", ".xlsm":
		return uploadFormatWorkbook, nil
	}
	return 0, errors.Wrapf(models.ErrUnsupportedFileType, "%s", filename)
}

// Upload stores a csv file as a single table, or every sheet of a workbook as its own table under
// the same filename. A workbook upload succeeds as soon as one sheet is saved.
func (usecase *DatasetUsecase) Upload(ctx context.Context, input models.UploadInput) (models.UploadResult, error) {
	filename := strings.TrimSpace(input.Filename)
	if filename == "" {
		return models.UploadResult{}, models.ErrEmptyFilename
	}
	if len(input.Content) == 0 {
		return models.UploadResult{}, models.ErrNoFileProvided
	}

	format, err := uploadFormatOf(filename)
	if err != nil {
		return models.UploadResult{}, err
	}

	if format == uploadFormatCSV {
		key := models.DatasetKey{Filename: filename}
		if err := usecase.gateway.Save(ctx, key, string(input.Content)); err != nil {
			return models.UploadResult{}, err
		}
		return models.UploadResult{
			Filename: filename,
			Sheets:   []null.String{key.NullSheet()},
		}, nil
	}

	return usecase.uploadWorkbook(ctx, filename, input.Content)
}

func (usecase *DatasetUsecase) uploadWorkbook(ctx context.Context, filename string, content []byte) (models.UploadResult, error) {
	logger := utils.LoggerFromContext(ctx)

	sheets, err := table_parser.ReadWorkbook(bytes.NewReader(content))
	if err != nil {
		return models.UploadResult{}, errors.WithSecondaryError(errors.Wrapf(models.ErrUnreadableWorkbook, "%s", filename), err)
	}
	if len(sheets) == 0 {
		return models.UploadResult{}, errors.Wrapf(models.ErrUnreadableWorkbook, "%s has no sheet", filename)
	}

	result := models.UploadResult{
		Filename: filename,
		Sheets:   make([]null.String, 0, len(sheets)),
	}
	var lastErr error
	for _, sheet := range sheets {
		err := usecase.gateway.Save(ctx, models.DatasetKey{Filename: filename, Sheet: sheet.Name}, sheet.Content)
		if err != nil {
			logger.WarnContext(ctx, "failed to save sheet", "filename", filename, "sheet", sheet.Name, "error", err.Error())
			lastErr = err
			continue
		}
		result.Sheets = append(result.Sheets, null.StringFrom(sheet.Name))
	}

	if len(result.Sheets) == 0 {
		return models.UploadResult{}, errors.Wrapf(lastErr, "failed to save any sheet of %s", filename)
	}
	return result, nil
}

func (usecase *DatasetUsecase) ListFiles(ctx context.Context) ([]string, error) {
	return usecase.gateway.ListFiles(ctx)
}

func (usecase *DatasetUsecase) ListSheets(ctx context.Context, filename string) ([]string, error) {
	if filename == "" {
		return nil, models.ErrEmptyFilename
	}
	return usecase.gateway.ListSheets(ctx, filename)
}

// ListFilesWithSheets returns every file, most recent first, with its named sheets.
func (usecase *DatasetUsecase) ListFilesWithSheets(ctx context.Context) ([]models.FileSheets, error) {
	files, err := usecase.gateway.ListFiles(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.FileSheets, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(listSheetsConcurrency)
	for i, filename := range files {
		group.Go(func() error {
			sheets, err := usecase.gateway.ListSheets(groupCtx, filename)
			if err != nil {
				return err
			}
			result[i] = models.FileSheets{Filename: filename, Sheets: sheets}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (usecase *DatasetUsecase) FetchContent(ctx context.Context, key models.DatasetKey) (string, error) {
	if key.Filename == "" {
		return "", models.ErrEmptyFilename
	}
	return usecase.gateway.GetContent(ctx, key)
}

func (usecase *DatasetUsecase) DeleteFile(ctx context.Context, filename string) error {
	if filename == "" {
		return models.ErrEmptyFilename
	}
	return usecase.gateway.Delete(ctx, filename)
}

// GetHeatmap loads a stored table and renders it through the given view.
func (usecase *DatasetUsecase) GetHeatmap(ctx context.Context, key models.DatasetKey, view models.MetricView) (models.Heatmap, error) {
	content, err := usecase.FetchContent(ctx, key)
	if err != nil {
		return models.Heatmap{}, err
	}

	grid := heatmap.Aggregate(table_parser.Parse(content))
	return heatmap.Render(grid, view), nil
}
