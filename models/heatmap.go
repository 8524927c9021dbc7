package models

import (
	"math"
	"strings"
)

type Weekday string

const (
	Sunday    Weekday = "Sunday"
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

// Days is the canonical display order of the grid columns.
var Days = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

const HoursPerDay = 24

// DayIndex returns the position of the day in Days, or -1 for a non canonical name.
func (d Weekday) DayIndex() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

// Record is one parsed row of a performance table.
type Record struct {
	Hour        int
	Day         Weekday
	Conversions float64
	Cost        float64
}

type Cell struct {
	Conversions float64
	Cost        float64
}

type MetricView string

const (
	MetricViewConversions    MetricView = "conversions"
	MetricViewCost           MetricView = "cost"
	MetricViewConversionCost MetricView = "conversion-cost"
	MetricViewCostConversion MetricView = "cost-conversion"
)

var MetricViews = []MetricView{
	MetricViewConversions,
	MetricViewCost,
	MetricViewConversionCost,
	MetricViewCostConversion,
}

func MetricViewFrom(s string) (MetricView, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return MetricViewConversions, true
	}
	for _, v := range MetricViews {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

// Value projects a cell to the single number displayed for this view.
func (v MetricView) Value(c Cell) float64 {
	switch v {
	case MetricViewCost:
		return c.Cost
	case MetricViewConversionCost:
		if c.Cost > 0 {
			return finiteOrZero(c.Conversions / c.Cost)
		}
		return 0
	case MetricViewCostConversion:
		if c.Conversions > 0 {
			return finiteOrZero(c.Cost / c.Conversions)
		}
		return 0
	}
	return c.Conversions
}

// a ratio of two finite values can still overflow
func finiteOrZero(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

// IsRatio is true for the two derived ratio views, which are displayed with two decimals.
func (v MetricView) IsRatio() bool {
	return v == MetricViewConversionCost || v == MetricViewCostConversion
}

func (v MetricView) Title() string {
	switch v {
	case MetricViewCost:
		return "Cost Heatmap"
	case MetricViewConversionCost:
		return "Conversion/Cost Heatmap"
	case MetricViewCostConversion:
		return "Cost/Conversion Heatmap"
	}
	return "Conversions Heatmap"
}

type Bounds struct {
	Min float64
	Max float64
}

type ColorSample struct {
	BackgroundColor string
	TextColor       string
}

type Slot struct {
	Day  Weekday
	Hour int
}

type HeatmapCell struct {
	Day         Weekday
	Hour        int
	Value       float64
	Conversions float64
	Cost        float64
	Color       ColorSample
}

type HeatmapLegend struct {
	Bounds
	LowColor  string
	MidColor  string
	HighColor string
}

type Heatmap struct {
	View           MetricView
	Cells          []HeatmapCell
	Legend         HeatmapLegend
	ZeroSlots      []Slot
	SkippedRecords int
}
