// Package granularity picks the aggregation bucket for a chart from its
// time window and the number of points the client wants to draw
package granularity

import (
	"math"
	"strconv"
	"strings"

	"tsdash/internal/core/timewindow"
	perr "tsdash/internal/platform/errors"
)

// Raw is returned as both Code and Label when the window is short enough to
// plot every datapoint
const Raw = "Raw datapoints"

// Upper bounds per unit, applied before rounding
const (
	MaxSec  = 120
	MaxMin  = 120
	MaxHour = 48
)

// Result is a storage code like "5m" with its label like "5 mins"
type Result struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// IsRaw reports whether no aggregation should happen
func (r Result) IsRaw() bool { return r.Code == Raw }

var unitSeconds = map[byte]int64{'s': 1, 'm': 60, 'h': 3600, 'd': 86400}

var unitWords = map[byte]string{'s': "sec", 'm': "min", 'h': "hour", 'd': "day"}

// Seconds is the bucket width, 0 for raw
func (r Result) Seconds() int64 {
	if r.IsRaw() || len(r.Code) < 2 {
		return 0
	}
	n, err := strconv.ParseInt(r.Code[:len(r.Code)-1], 10, 64)
	if err != nil {
		return 0
	}
	return n * unitSeconds[r.Code[len(r.Code)-1]]
}

// Resolve returns Raw when the window is under rawThresholdMinutes,
// otherwise the coarsest whole unit that spreads the window over points buckets
// points below 1 count as 1
func Resolve(w timewindow.Window, rawThresholdMinutes, points int) Result {
	dur := w.Duration()
	if dur < int64(rawThresholdMinutes)*60_000 {
		return Result{Code: Raw, Label: Raw}
	}
	if points < 1 {
		points = 1
	}

	// stay in float until the unit is chosen
	res := float64(dur) / 1000 / float64(points)
	if res < MaxSec {
		n := round(res)
		if n == 0 {
			n = 1
		}
		return build(n, 's')
	}
	res /= 60
	if res <= MaxMin {
		return build(round(res), 'm')
	}
	res /= 60
	if res <= MaxHour {
		return build(round(res), 'h')
	}
	return build(round(res/24), 'd')
}

// Parse rebuilds a Result from its Code
func Parse(code string) (Result, error) {
	code = strings.TrimSpace(code)
	if code == Raw {
		return Result{Code: Raw, Label: Raw}, nil
	}
	if len(code) < 2 {
		return Result{}, perr.InvalidArgf("bad granularity %q", code)
	}
	unit := code[len(code)-1]
	if _, ok := unitSeconds[unit]; !ok {
		return Result{}, perr.InvalidArgf("bad granularity unit in %q", code)
	}
	n, err := strconv.ParseInt(code[:len(code)-1], 10, 64)
	if err != nil || n < 0 {
		return Result{}, perr.InvalidArgf("bad granularity %q", code)
	}
	return build(n, unit), nil
}

// round is half to even
func round(f float64) int64 { return int64(math.RoundToEven(f)) }

func build(n int64, unit byte) Result {
	s := strconv.FormatInt(n, 10)
	label := s + " " + unitWords[unit]
	if n > 1 {
		label += "s"
	}
	return Result{Code: s + string(unit), Label: label}
}
