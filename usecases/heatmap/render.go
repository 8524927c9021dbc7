package heatmap

import (
	"github.com/checkmarble/heatmap-backend/models"
)

// Render projects the grid through a view and colors every slot.
func Render(g Grid, view models.MetricView) models.Heatmap {
	bounds := g.Bounds(view)
	cells := make([]models.HeatmapCell, 0, len(models.Days)*models.HoursPerDay)
	g.Each(func(day models.Weekday, hour int, cell models.Cell) {
		value := view.Value(cell)
		cells = append(cells, models.HeatmapCell{
			Day:         day,
			Hour:        hour,
			Value:       value,
			Conversions: cell.Conversions,
			Cost:        cell.Cost,
			Color:       ColorFor(value, view, bounds),
		})
	})

	return models.Heatmap{
		View:           view,
		Cells:          cells,
		Legend:         LegendFor(view, bounds),
		ZeroSlots:      g.ZeroConversionSlots(),
		SkippedRecords: g.Skipped(),
	}
}
