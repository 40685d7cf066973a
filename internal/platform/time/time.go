// Package time converts between wall clock values and epoch milliseconds
package time

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date form used by the date picker
const DateLayout = "2006-01-02"

// Day is 24 hours
const Day = 24 * time.Hour

// chartLayouts are the accepted zoom payload forms, most specific first
var chartLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05.999999Z07:00",
	"2006-01-02T15:04:05.999999",
	DateLayout,
}

// Millis returns t as epoch milliseconds
func Millis(t time.Time) int64 { return t.UnixMilli() }

// FromMillis returns ms as a UTC time
func FromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// ISOLayout is RFC 3339 in UTC with fixed milliseconds
const ISOLayout = "2006-01-02T15:04:05.000Z"

// ISO formats ms as ISOLayout
func ISO(ms int64) string { return FromMillis(ms).Format(ISOLayout) }

// ParseDate parses a YYYY-MM-DD date as UTC midnight
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// ParseChart parses a zoom boundary: epoch ms digits or one of the chart layouts in UTC
func ParseChart(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	var firstErr error
	for _, layout := range chartLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return Millis(t), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return 0, firstErr
}

// Today returns the UTC calendar date of now
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
