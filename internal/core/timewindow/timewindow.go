// Package timewindow holds the [start, end) millisecond window a chart shows
// and the rules for deriving it from date pickers and chart zoom payloads
package timewindow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	perr "tsdash/internal/platform/errors"
	ptime "tsdash/internal/platform/time"
)

// Window is a time range in epoch milliseconds
type Window struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// ErrNoUpdate means the payload carries nothing that moves the window
// (a y-axis only zoom); callers keep what they have
var ErrNoUpdate = errors.New("timewindow: no update")

// Duration is End-Start in ms
func (w Window) Duration() int64 { return w.End - w.Start }

// StartTime returns Start as UTC time
func (w Window) StartTime() time.Time { return ptime.FromMillis(w.Start) }

// EndTime returns End as UTC time
func (w Window) EndTime() time.Time { return ptime.FromMillis(w.End) }

// Normalize rejects End < Start and widens an empty window to 1 ms
func (w Window) Normalize() (Window, error) {
	if w.End < w.Start {
		return Window{}, perr.InvalidArgf("window end %d is before start %d", w.End, w.Start)
	}
	if w.End == w.Start {
		w.End++
	}
	return w, nil
}

// FromDates turns two YYYY-MM-DD picker values into a window
// both parse as UTC midnight; the end day is included so End moves one day forward
func FromDates(startDate, endDate string) (Window, error) {
	s, err := ptime.ParseDate(startDate)
	if err != nil {
		return Window{}, perr.WithField(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "bad start date %q", startDate), "start_date")
	}
	e, err := ptime.ParseDate(endDate)
	if err != nil {
		return Window{}, perr.WithField(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "bad end date %q", endDate), "end_date")
	}
	return Window{Start: ptime.Millis(s), End: ptime.Millis(e.Add(ptime.Day))}, nil
}

// relayout keys plotly emits on zoom
const (
	keyX0 = "xaxis.range[0]"
	keyX1 = "xaxis.range[1]"
	keyY0 = "yaxis.range[0]"
)

// FromRelayout derives the window after a chart interaction
// x zoom wins, a y-only zoom is ErrNoUpdate, anything else falls back to the pickers
func FromRelayout(relayout map[string]any, startDate, endDate string) (Window, error) {
	if x0, ok := relayout[keyX0]; ok && present(x0) {
		x1, ok := relayout[keyX1]
		if !ok || !present(x1) {
			return Window{}, perr.WithField(perr.InvalidArgf("%s without %s", keyX0, keyX1), "relayout")
		}
		s, err := toMillis(x0)
		if err != nil {
			return Window{}, perr.WithField(err, "relayout")
		}
		e, err := toMillis(x1)
		if err != nil {
			return Window{}, perr.WithField(err, "relayout")
		}
		return Window{Start: s, End: e}, nil
	}
	if _, ok := relayout[keyY0]; ok {
		return Window{}, ErrNoUpdate
	}
	return FromDates(startDate, endDate)
}

// present treats nil, "" and false like a missing key
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	case bool:
		return x
	}
	return true
}

// toMillis accepts chart date strings or epoch ms numbers
func toMillis(v any) (int64, error) {
	switch x := v.(type) {
	case float64:
		return int64(x), nil
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case string:
		ms, err := ptime.ParseChart(x)
		if err != nil {
			return 0, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "bad range value %q", x)
		}
		return ms, nil
	}
	return 0, perr.InvalidArgf("bad range value of type %s", fmt.Sprintf("%T", v))
}
