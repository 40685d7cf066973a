package granularity

import (
	"strconv"
	"strings"
	"testing"

	"tsdash/internal/core/timewindow"
	perr "tsdash/internal/platform/errors"
)

const (
	second = int64(1000)
	minute = 60 * second
	hour   = 60 * minute
	day    = 24 * hour
)

func win(ms int64) timewindow.Window {
	return timewindow.Window{Start: 1_600_000_000_000, End: 1_600_000_000_000 + ms}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		dur       int64
		threshold int
		points    int
		code      string
		label     string
	}{
		{"under threshold", hour, 90, 250, Raw, Raw},
		{"at threshold is aggregated", 90 * minute, 90, 250, "22s", "22 secs"},
		{"two hours standard", 2 * hour, 90, 250, "29s", "29 secs"},
		{"threshold zero never raw", 1, 0, 250, "1s", "1 sec"},
		{"sub second clamps to one", 2 * hour, 0, 100_000, "1s", "1 sec"},
		{"half rounds to even down", 2500, 0, 1, "2s", "2 secs"},
		{"half rounds to even up", 3500, 0, 1, "4s", "4 secs"},
		{"just under max sec", 119 * 250 * second, 0, 250, "119s", "119 secs"},
		{"max sec rolls to minutes", 120 * 250 * second, 0, 250, "2m", "2 mins"},
		{"two days low", 2 * day, 90, 100, "29m", "29 mins"},
		{"one week standard", 7 * day, 90, 250, "40m", "40 mins"},
		{"thirty days extreme", 30 * day, 90, 750, "58m", "58 mins"},
		{"max minutes stays minutes", 120 * 250 * minute, 0, 250, "120m", "120 mins"},
		{"past max minutes to hours", 121 * 250 * minute, 0, 250, "2h", "2 hours"},
		{"thirty days low", 30 * day, 90, 100, "7h", "7 hours"},
		{"max hours stays hours", 48 * 100 * hour, 0, 100, "48h", "48 hours"},
		{"one year low", 365 * day, 90, 100, "4d", "4 days"},
		{"ten years", 3650 * day, 90, 250, "15d", "15 days"},
		{"zero points treated as one", 10 * second, 0, 0, "10s", "10 secs"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Resolve(win(c.dur), c.threshold, c.points)
			if got.Code != c.code || got.Label != c.label {
				t.Fatalf("Resolve(%d ms, %d, %d) = %+v, want {%s %s}", c.dur, c.threshold, c.points, got, c.code, c.label)
			}
		})
	}
}

func TestResolve_RawIgnoresPoints(t *testing.T) {
	t.Parallel()

	for _, points := range []int{1, 100, 250, 400, 750, 1 << 20} {
		for _, dur := range []int64{0, 1, 59 * minute, 89*minute + 59*second} {
			if r := Resolve(win(dur), 90, points); !r.IsRaw() || r.Seconds() != 0 {
				t.Fatalf("dur=%d points=%d = %+v", dur, points, r)
			}
		}
	}
}

// every non raw code has a positive magnitude and labels pluralize only above one
func TestResolve_Properties(t *testing.T) {
	t.Parallel()

	for _, points := range []int{1, 7, 100, 250, 400, 750} {
		for dur := int64(1); dur < 4000*day; dur = dur*3 + 17 {
			r := Resolve(win(dur), 0, points)
			n, err := strconv.ParseInt(r.Code[:len(r.Code)-1], 10, 64)
			if err != nil || n < 1 {
				t.Fatalf("dur=%d points=%d bad code %q", dur, points, r.Code)
			}
			plural := strings.HasSuffix(r.Label, "s")
			if plural != (n > 1) {
				t.Fatalf("dur=%d points=%d label %q for n=%d", dur, points, r.Label, n)
			}
			switch r.Code[len(r.Code)-1] {
			case 's':
				if n > MaxSec {
					t.Fatalf("seconds over bound: %q", r.Code)
				}
			case 'm':
				if n > MaxMin {
					t.Fatalf("minutes over bound: %q", r.Code)
				}
			case 'h':
				if n > MaxHour {
					t.Fatalf("hours over bound: %q", r.Code)
				}
			}
		}
	}
}

func TestSeconds(t *testing.T) {
	t.Parallel()

	cases := map[string]int64{"29s": 29, "40m": 2400, "7h": 25200, "4d": 345600, Raw: 0, "x": 0, "zzm": 0}
	for code, want := range cases {
		if got := (Result{Code: code}).Seconds(); got != want {
			t.Fatalf("Seconds(%q) = %d, want %d", code, got, want)
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	for _, r := range []Result{
		Resolve(win(2*hour), 90, 250),
		Resolve(win(7*day), 90, 250),
		Resolve(win(30*day), 90, 100),
		Resolve(win(365*day), 90, 100),
		Resolve(win(hour), 90, 250),
	} {
		got, err := Parse(r.Code)
		if err != nil || got != r {
			t.Fatalf("Parse(%q) = %+v, %v want %+v", r.Code, got, err, r)
		}
	}

	if got, err := Parse("1h"); err != nil || got.Label != "1 hour" {
		t.Fatalf("Parse(1h) = %+v, %v", got, err)
	}
	if got, err := Parse("0d"); err != nil || got.Label != "0 day" {
		t.Fatalf("zero magnitude stays singular: %+v, %v", got, err)
	}
	for _, bad := range []string{"", "s", "5w", "-3m", "m5", "1.5h"} {
		if _, err := Parse(bad); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("Parse(%q) err = %v", bad, err)
		}
	}
}
