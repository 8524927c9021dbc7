package dto

import (
	"math"

	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/pure_utils"
)

type HeatmapCellDto struct {
	Day             string  `json:"day"`
	Hour            int     `json:"hour"`
	Value           float64 `json:"value"`
	Conversions     float64 `json:"conversions"`
	Cost            float64 `json:"cost"`
	BackgroundColor string  `json:"background_color"`
	TextColor       string  `json:"text_color"`
}

type HeatmapLegendDto struct {
	Title     string  `json:"title"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	LowColor  string  `json:"low_color"`
	MidColor  string  `json:"mid_color"`
	HighColor string  `json:"high_color"`
}

type SlotDto struct {
	Day  string `json:"day"`
	Hour int    `json:"hour"`
}

type HeatmapDto struct {
	View                string           `json:"view"`
	Days                []string         `json:"days"`
	Cells               []HeatmapCellDto `json:"cells"`
	Legend              HeatmapLegendDto `json:"legend"`
	ZeroConversionSlots []SlotDto        `json:"zero_conversion_slots"`
	SkippedRecords      int              `json:"skipped_records"`
}

// ratio views are displayed with two decimals
func displayValue(view models.MetricView, value float64) float64 {
	if view.IsRatio() {
		return math.Round(value*100) / 100
	}
	return value
}

func AdaptHeatmapCellDto(view models.MetricView, cell models.HeatmapCell) HeatmapCellDto {
	return HeatmapCellDto{
		Day:             string(cell.Day),
		Hour:            cell.Hour,
		Value:           displayValue(view, cell.Value),
		Conversions:     cell.Conversions,
		Cost:            cell.Cost,
		BackgroundColor: cell.Color.BackgroundColor,
		TextColor:       cell.Color.TextColor,
	}
}

func AdaptSlotDto(slot models.Slot) SlotDto {
	return SlotDto{Day: string(slot.Day), Hour: slot.Hour}
}

func AdaptHeatmapDto(heatmap models.Heatmap) HeatmapDto {
	return HeatmapDto{
		View:  string(heatmap.View),
		Days:  pure_utils.Map(models.Days[:], func(day models.Weekday) string { return string(day) }),
		Cells: pure_utils.Map(heatmap.Cells, func(cell models.HeatmapCell) HeatmapCellDto {
			return AdaptHeatmapCellDto(heatmap.View, cell)
		}),
		Legend: HeatmapLegendDto{
			Title:     heatmap.View.Title(),
			Min:       heatmap.Legend.Min,
			Max:       heatmap.Legend.Max,
			LowColor:  heatmap.Legend.LowColor,
			MidColor:  heatmap.Legend.MidColor,
			HighColor: heatmap.Legend.HighColor,
		},
		ZeroConversionSlots: pure_utils.Map(heatmap.ZeroSlots, AdaptSlotDto),
		SkippedRecords:      heatmap.SkippedRecords,
	}
}
