package dto

import (
	"fmt"

	"github.com/guregu/null/v5"

	"github.com/checkmarble/heatmap-backend/models"
)

type UploadResultDto struct {
	Success  bool          `json:"success"`
	Filename string        `json:"filename"`
	Sheets   []null.String `json:"sheets"`
	Message  string        `json:"message"`
}

func AdaptUploadResultDto(result models.UploadResult) UploadResultDto {
	message := "CSV file uploaded successfully"
	if len(result.Sheets) > 0 && result.Sheets[0].Valid {
		message = fmt.Sprintf("Excel file uploaded successfully with %d sheet(s)", len(result.Sheets))
	}

	return UploadResultDto{
		Success:  true,
		Filename: result.Filename,
		Sheets:   result.Sheets,
		Message:  message,
	}
}

type FileSheetsDto struct {
	Filename string   `json:"filename"`
	Sheets   []string `json:"sheets"`
}

func AdaptFileSheetsDto(file models.FileSheets) FileSheetsDto {
	sheets := file.Sheets
	if sheets == nil {
		sheets = []string{}
	}
	return FileSheetsDto{
		Filename: file.Filename,
		Sheets:   sheets,
	}
}

type DatasetQuery struct {
	Filename string `uri:"filename" binding:"required"`
}

type DatasetSheetQuery struct {
	Sheet string `form:"sheet"`
}

type HeatmapQuery struct {
	Sheet string `form:"sheet"`
	View  string `form:"view"`
}
