package heatmap

import (
	"math"

	"github.com/checkmarble/heatmap-backend/models"
)

// Grid is the day x hour table of aggregated cells. Lookups are total: any (day, hour) resolves to
// a cell, the zero cell when nothing was recorded there or when the pair is outside the week.
type Grid struct {
	cells   [len(models.Days)][models.HoursPerDay]models.Cell
	skipped int
}

func slotIndex(day models.Weekday, hour int) (int, bool) {
	d := day.DayIndex()
	if d < 0 || hour < 0 || hour >= models.HoursPerDay {
		return 0, false
	}
	return d, true
}

// Aggregate places every record at its (day, hour) slot. On collisions the last record wins.
func Aggregate(records []models.Record) Grid {
	var g Grid
	for _, r := range records {
		d, ok := slotIndex(r.Day, r.Hour)
		if !ok {
			g.skipped++
			continue
		}
		g.cells[d][r.Hour] = models.Cell{Conversions: r.Conversions, Cost: r.Cost}
	}
	return g
}

func (g Grid) Cell(day models.Weekday, hour int) models.Cell {
	d, ok := slotIndex(day, hour)
	if !ok {
		return models.Cell{}
	}
	return g.cells[d][hour]
}

func (g Grid) Value(view models.MetricView, day models.Weekday, hour int) float64 {
	return view.Value(g.Cell(day, hour))
}

// Skipped counts records whose day or hour fell outside the canonical week.
func (g Grid) Skipped() int {
	return g.skipped
}

// Each visits the 168 slots hour-major, in display order.
func (g Grid) Each(fn func(day models.Weekday, hour int, cell models.Cell)) {
	for hour := 0; hour < models.HoursPerDay; hour++ {
		for d, day := range models.Days {
			fn(day, hour, g.cells[d][hour])
		}
	}
}

// Bounds returns the legend range of a view: min is floored at 0 and max at 1.
func (g Grid) Bounds(view models.MetricView) models.Bounds {
	b := models.Bounds{Min: 0, Max: 1}
	g.Each(func(_ models.Weekday, _ int, cell models.Cell) {
		v := view.Value(cell)
		b.Min = math.Min(b.Min, v)
		b.Max = math.Max(b.Max, v)
	})
	return b
}

// ZeroConversionSlots lists the slots without any conversion, day by day.
func (g Grid) ZeroConversionSlots() []models.Slot {
	slots := make([]models.Slot, 0)
	for d, day := range models.Days {
		for hour := 0; hour < models.HoursPerDay; hour++ {
			if g.cells[d][hour].Conversions == 0 {
				slots = append(slots, models.Slot{Day: day, Hour: hour})
			}
		}
	}
	return slots
}
