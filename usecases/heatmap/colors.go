package heatmap

import (
	"fmt"
	"math"

	"github.com/checkmarble/heatmap-backend/models"
)

type RGB struct {
	R, G, B uint8
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Luminance is the perceived brightness on a 0-255 scale.
func (c RGB) Luminance() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

var (
	White     = RGB{0xff, 0xff, 0xff}
	Black     = RGB{0x00, 0x00, 0x00}
	Green     = RGB{0x2d, 0xa1, 0x55}
	LightRed  = RGB{0xfe, 0x7f, 0x7f}
	WorstCase = RGB{0xb9, 0x1c, 0x1c}
)

const textLuminanceThreshold = 155

type anchors struct {
	low, high RGB
}

func anchorsFor(view models.MetricView) anchors {
	switch view {
	case models.MetricViewCost, models.MetricViewCostConversion:
		return anchors{low: White, high: LightRed}
	}
	return anchors{low: White, high: Green}
}

func Interpolate(low, high RGB, factor float64) RGB {
	channel := func(l, h uint8) uint8 {
		return uint8(math.Round(float64(l) + (float64(h)-float64(l))*factor))
	}
	return RGB{
		R: channel(low.R, high.R),
		G: channel(low.G, high.G),
		B: channel(low.B, high.B),
	}
}

// Intensity is value/max clamped to [0, 1]. Degenerate inputs map to 0.
func Intensity(value, maximum float64) float64 {
	if maximum <= 0 || math.IsNaN(value) || math.IsNaN(maximum) {
		return 0
	}
	quotient := value / maximum
	if math.IsNaN(quotient) {
		return 0
	}
	return math.Min(math.Max(quotient, 0), 1)
}

func BackgroundColor(value float64, view models.MetricView, bounds models.Bounds) RGB {
	// a zero cost per conversion means no conversion was bought: always the worst case
	if view == models.MetricViewCostConversion && value == 0 {
		return WorstCase
	}
	a := anchorsFor(view)
	return Interpolate(a.low, a.high, Intensity(value, bounds.Max))
}

func TextColor(background RGB) RGB {
	if background.Luminance() > textLuminanceThreshold {
		return Black
	}
	return White
}

// ColorFor is a pure function of its arguments. bounds.Min is part of the contract but the scale
// starts at zero, so only bounds.Max drives the intensity.
func ColorFor(value float64, view models.MetricView, bounds models.Bounds) models.ColorSample {
	background := BackgroundColor(value, view, bounds)
	return models.ColorSample{
		BackgroundColor: background.Hex(),
		TextColor:       TextColor(background).Hex(),
	}
}

// LegendFor describes the scale shown next to a heatmap. The bounds are the numeric range of the
// view; the cost per conversion zero override only applies to cells.
func LegendFor(view models.MetricView, bounds models.Bounds) models.HeatmapLegend {
	a := anchorsFor(view)
	return models.HeatmapLegend{
		Bounds:    bounds,
		LowColor:  a.low.Hex(),
		MidColor:  Interpolate(a.low, a.high, 0.5).Hex(),
		HighColor: a.high.Hex(),
	}
}
