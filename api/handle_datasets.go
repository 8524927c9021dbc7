package api

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/checkmarble/heatmap-backend/dto"
	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/pure_utils"
	"github.com/checkmarble/heatmap-backend/usecases"
)

type FileForm struct {
	File *multipart.FileHeader `form:"file" binding:"required"`
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(err, "error opening uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(err, "error reading uploaded file")
	}
	return content, nil
}

func handleUploadFile(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var form FileForm
		if err := c.ShouldBind(&form); err != nil {
			// the size limiter may already have answered
			if c.IsAborted() {
				return
			}
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				c.JSON(http.StatusRequestEntityTooLarge, dto.APIErrorResponse{
					Message:   err.Error(),
					ErrorCode: dto.PayloadTooLarge,
				})
				return
			}
			presentError(ctx, c, errors.Wrap(models.ErrNoFileProvided, err.Error()))
			return
		}

		content, err := readFormFile(form.File)
		if presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewDatasetUsecase()
		result, err := usecase.Upload(ctx, models.UploadInput{
			Filename: form.File.Filename,
			Content:  content,
		})
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptUploadResultDto(result))
	}
}

func handleListFiles(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := uc.NewDatasetUsecase()
		files, err := usecase.ListFiles(ctx)
		if presentError(ctx, c, err) {
			return
		}
		if files == nil {
			files = []string{}
		}

		c.JSON(http.StatusOK, files)
	}
}

func handleListFilesWithSheets(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := uc.NewDatasetUsecase()
		files, err := usecase.ListFilesWithSheets(ctx)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, pure_utils.Map(files, dto.AdaptFileSheetsDto))
	}
}

func handleListSheets(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var query dto.DatasetQuery
		if err := c.ShouldBindUri(&query); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewDatasetUsecase()
		sheets, err := usecase.ListSheets(ctx, query.Filename)
		if presentError(ctx, c, err) {
			return
		}
		if sheets == nil {
			sheets = []string{}
		}

		c.JSON(http.StatusOK, sheets)
	}
}

func handleGetFileContent(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var query dto.DatasetQuery
		if err := c.ShouldBindUri(&query); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		var sheetQuery dto.DatasetSheetQuery
		if err := c.ShouldBindQuery(&sheetQuery); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewDatasetUsecase()
		content, err := usecase.FetchContent(ctx, models.DatasetKey{
			Filename: query.Filename,
			Sheet:    sheetQuery.Sheet,
		})
		if presentError(ctx, c, err) {
			return
		}

		c.Data(http.StatusOK, "text/csv", []byte(content))
	}
}

func handleDeleteFile(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var query dto.DatasetQuery
		if err := c.ShouldBindUri(&query); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewDatasetUsecase()
		err := usecase.DeleteFile(ctx, query.Filename)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
