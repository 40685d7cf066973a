// Package domain holds plot request and response types
package domain

import (
	"tsdash/internal/core/figure"
	"tsdash/internal/core/palette"
	seriesdomain "tsdash/internal/services/api/series/domain"
)

// MaxSimultaneousPlots caps the series in one render
const MaxSimultaneousPlots = 5

// RenderInput asks for a chart
// Colors is the opaque lookup blob from the previous render, ignored when SessionID is set
type RenderInput struct {
	Series              []string `json:"series"                validate:"dive,seriesid"`
	Start               int64    `json:"start"`
	End                 int64    `json:"end"`
	RawThresholdMinutes int      `json:"raw_threshold_minutes" validate:"min=0,max=720"`
	Points              int      `json:"points"                validate:"required,min=1,max=10000"`
	Colors              string   `json:"colors"`
	SessionID           string   `json:"session_id"`
}

// GranularityOut describes the chosen bucket
type GranularityOut struct {
	Code    string `json:"code"`
	Label   string `json:"label"`
	Raw     bool   `json:"raw"`
	Seconds int64  `json:"seconds"`
}

// RenderOutput is a ready to draw figure plus the grown lookup blob
type RenderOutput struct {
	Figure      figure.Figure         `json:"figure"`
	Granularity GranularityOut        `json:"granularity"`
	Colors      string                `json:"colors"`
	Series      []seriesdomain.Series `json:"series"`
}

// GranularityInput is the pure resolver input
type GranularityInput struct {
	Start               int64 `json:"start"`
	End                 int64 `json:"end"`
	RawThresholdMinutes int   `json:"raw_threshold_minutes" validate:"min=0,max=720"`
	Points              int   `json:"points"                validate:"required,min=1,max=10000"`
}

// ColorsInput is the pure assigner input
type ColorsInput struct {
	Series []string `json:"series" validate:"dive,seriesid"`
	Colors string   `json:"colors"`
}

// ColorEntry is one assigned pair with css forms
type ColorEntry struct {
	ID      string        `json:"id"`
	Fill    palette.Color `json:"fill"`
	Line    palette.Color `json:"line"`
	FillCSS string        `json:"fill_css"`
	LineCSS string        `json:"line_css"`
}

// ColorsOut is the assigner result
type ColorsOut struct {
	Colors []ColorEntry `json:"colors"`
	Lookup string       `json:"lookup"`
}

// WindowInput derives a window from date pickers or a chart zoom payload
type WindowInput struct {
	Relayout  map[string]any `json:"relayout"`
	StartDate string         `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string         `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

// Choice is a labeled value
type Choice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Slider describes the raw threshold slider
type Slider struct {
	Min     int            `json:"min"`
	Max     int            `json:"max"`
	Step    int            `json:"step"`
	Default int            `json:"default"`
	Marks   map[int]string `json:"marks"`
}

// DateRange is a default picker range
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Options are the control settings a client renders
type Options struct {
	Resolutions       []Choice  `json:"resolutions"`
	DefaultResolution int       `json:"default_resolution"`
	RawThreshold      Slider    `json:"raw_threshold"`
	DateRange         DateRange `json:"date_range"`
	MaxSeries         int       `json:"max_series"`
	PaletteScope      string    `json:"palette_scope"`
}
