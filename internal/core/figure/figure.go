// Package figure assembles a plotly compatible chart from series datapoints
package figure

import (
	"encoding/json"
	"math"
	"strconv"

	"tsdash/internal/core/granularity"
	"tsdash/internal/core/palette"
	"tsdash/internal/core/timewindow"
	perr "tsdash/internal/platform/errors"
	ptime "tsdash/internal/platform/time"
)

// MainLineWidth is the width of the value or average line
const MainLineWidth = 1.75

// Series names one plotted series
type Series struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
}

// Points is a columnar datapoint block
// raw plots fill Value; aggregated plots fill Average, Min and Max
type Points struct {
	Timestamps []int64
	Value      []float64
	Average    []float64
	Min        []float64
	Max        []float64
}

// Len is the number of timestamps
func (p Points) Len() int { return len(p.Timestamps) }

// Plot is one series with its colors and datapoints
type Plot struct {
	Series Series
	Colors palette.ColorPair
	Points Points
}

// Number encodes NaN and infinities as null
type Number float64

// MarshalJSON implements json.Marshaler
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// Line styles a trace line
type Line struct {
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

// Trace is a plotly scatter trace
type Trace struct {
	Type       string   `json:"type"`
	X          []string `json:"x"`
	Y          []Number `json:"y"`
	Name       string   `json:"name"`
	Mode       string   `json:"mode"`
	Fill       string   `json:"fill,omitempty"`
	FillColor  string   `json:"fillcolor,omitempty"`
	Line       Line     `json:"line"`
	ShowLegend *bool    `json:"showlegend,omitempty"`
	YAxis      string   `json:"yaxis"`
}

// Font only carries a color here
type Font struct {
	Color string `json:"color"`
}

// Text is a plotly title object
type Text struct {
	Text string `json:"text"`
}

// XAxis is the shared time axis
type XAxis struct {
	Title  Text       `json:"title"`
	Type   string     `json:"type"`
	Range  [2]string  `json:"range"`
	Domain [2]float64 `json:"domain"`
}

// YAxis is one value axis per plotted series
type YAxis struct {
	ShowLine   bool    `json:"showline"`
	ShowGrid   bool    `json:"showgrid"`
	Position   float64 `json:"position"`
	TitleFont  Font    `json:"titlefont"`
	TickFont   Font    `json:"tickfont"`
	Anchor     string  `json:"anchor,omitempty"`
	Overlaying string  `json:"overlaying,omitempty"`
	Side       string  `json:"side,omitempty"`
}

// Layout is the figure layout; YAxes[i] is written as yaxis, yaxis2, ...
type Layout struct {
	Title     Text
	XAxis     XAxis
	YAxes     []YAxis
	HoverMode string
}

// MarshalJSON flattens YAxes into numbered keys
func (l Layout) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"title":     l.Title,
		"xaxis":     l.XAxis,
		"hovermode": l.HoverMode,
	}
	for i, y := range l.YAxes {
		m[axisKey(i+1)] = y
	}
	return json.Marshal(m)
}

// Figure is {data, layout}
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// XStart is where the x domain begins so n left hand y axes fit
func XStart(n int) float64 {
	if n <= 1 {
		return 0
	}
	return 0.03 * float64(n)
}

// AxisRef is the trace side name of axis n: y, y2, y3
func AxisRef(n int) string {
	if n <= 1 {
		return "y"
	}
	return "y" + strconv.Itoa(n)
}

func axisKey(n int) string {
	if n <= 1 {
		return "yaxis"
	}
	return "yaxis" + strconv.Itoa(n)
}

// Title is the chart heading; a single series is named up front
func Title(g granularity.Result, plots []Plot) string {
	agg := "Average"
	if g.IsRaw() {
		agg = "Not used"
	}
	t := "Aggregate: " + agg + ". Granularity: " + g.Label
	if len(plots) == 1 {
		s := plots[0].Series
		t = s.Name + " [" + s.ExternalID + "]. " + t
	}
	return t
}

// Build draws every plot over w at granularity g
// plots are numbered from 1 in order; each gets its own y axis
func Build(w timewindow.Window, g granularity.Result, plots []Plot) (Figure, error) {
	if len(plots) == 0 {
		return Figure{}, perr.InvalidArgf("nothing to plot")
	}
	fig := Figure{Data: make([]Trace, 0, 3*len(plots))}

	for i, p := range plots {
		n := i + 1
		if err := check(g, p); err != nil {
			return Figure{}, err
		}
		x := isoAll(p.Points.Timestamps)
		lineCSS := p.Colors.Line.CSS()

		if g.IsRaw() {
			fig.Data = append(fig.Data, Trace{
				Type:       "scatter",
				X:          x,
				Y:          numbers(p.Points.Value),
				Name:       p.Series.Name,
				Mode:       "lines+markers",
				Line:       Line{Width: MainLineWidth, Color: lineCSS},
				ShowLegend: boolPtr(true),
				YAxis:      AxisRef(n),
			})
			continue
		}

		fill, err := p.Colors.Fill.WithAlpha(1.2 / float64(n+1))
		if err != nil {
			return Figure{}, err
		}
		fig.Data = append(fig.Data,
			Trace{
				Type:       "scatter",
				X:          x,
				Y:          numbers(p.Points.Min),
				Name:       "Min",
				Mode:       "lines",
				Line:       Line{Width: 0, Color: lineCSS},
				ShowLegend: boolPtr(false),
				YAxis:      AxisRef(n),
			},
			Trace{
				Type:       "scatter",
				X:          x,
				Y:          numbers(p.Points.Max),
				Name:       "Max",
				Mode:       "lines",
				Fill:       "tonexty",
				FillColor:  fill.CSSA(),
				Line:       Line{Width: 0, Color: lineCSS},
				ShowLegend: boolPtr(false),
				YAxis:      AxisRef(n),
			},
			Trace{
				Type:  "scatter",
				X:     x,
				Y:     numbers(p.Points.Average),
				Name:  p.Series.Name,
				Mode:  "lines",
				Line:  Line{Width: MainLineWidth, Color: lineCSS},
				YAxis: AxisRef(n),
			},
		)
	}

	fig.Layout = Layout{
		Title: Text{Text: Title(g, plots)},
		XAxis: XAxis{
			Title:  Text{Text: "Time"},
			Type:   "date",
			Range:  [2]string{ptime.ISO(w.Start), ptime.ISO(w.End)},
			Domain: [2]float64{XStart(len(plots)), 1},
		},
		YAxes:     yAxes(plots),
		HoverMode: "x",
	}
	return fig, nil
}

func yAxes(plots []Plot) []YAxis {
	out := make([]YAxis, 0, len(plots))
	for i, p := range plots {
		n := i + 1
		c := p.Colors.Line.CSS()
		y := YAxis{
			ShowLine:  true,
			ShowGrid:  false,
			Position:  XStart(n),
			TitleFont: Font{Color: c},
			TickFont:  Font{Color: c},
		}
		if n > 1 {
			y.Anchor = "free"
			y.Overlaying = "y"
			y.Side = "left"
		}
		out = append(out, y)
	}
	return out
}

func check(g granularity.Result, p Plot) error {
	n := p.Points.Len()
	cols := map[string][]float64{"value": p.Points.Value}
	if !g.IsRaw() {
		cols = map[string][]float64{"average": p.Points.Average, "min": p.Points.Min, "max": p.Points.Max}
	}
	for name, c := range cols {
		if len(c) != n {
			return perr.Internalf("series %s: %d %s values for %d timestamps", p.Series.ExternalID, len(c), name, n)
		}
	}
	return nil
}

func isoAll(ts []int64) []string {
	out := make([]string, len(ts))
	for i, v := range ts {
		out[i] = ptime.ISO(v)
	}
	return out
}

func numbers(v []float64) []Number {
	out := make([]Number, len(v))
	for i, f := range v {
		out[i] = Number(f)
	}
	return out
}

func boolPtr(b bool) *bool { return &b }
