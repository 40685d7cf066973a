package time

import (
	"testing"
	"time"
)

func TestMillisRoundTrip(t *testing.T) {
	t.Parallel()

	ts := time.Date(2021, 3, 4, 12, 30, 15, 500_000_000, time.UTC)
	ms := Millis(ts)
	if !FromMillis(ms).Equal(ts) {
		t.Fatalf("round trip mismatch: %v", FromMillis(ms))
	}
	if got := ISO(ms); got != "2021-03-04T12:30:15.500Z" {
		t.Fatalf("ISO = %q", got)
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate(" 2021-03-04 ")
	if err != nil {
		t.Fatal(err)
	}
	if Millis(d) != 1614816000000 {
		t.Fatalf("ParseDate ms = %d", Millis(d))
	}
	if _, err := ParseDate("03/04/2021"); err == nil {
		t.Fatalf("expected error for bad date")
	}
}

func TestParseChart(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int64
	}{
		{"1614816000000", 1614816000000},
		{"2021-03-04", 1614816000000},
		{"2021-03-04 00:00", 1614816000000},
		{"2021-03-04 00:00:01", 1614816001000},
		{"2021-03-04 00:00:01.25", 1614816001250},
		{"2021-03-04T00:00:01.25Z", 1614816001250},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseChart(c.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Fatalf("ParseChart(%q) = %d, want %d", c.in, got, c.want)
			}
		})
	}
	if _, err := ParseChart("yesterday"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestToday(t *testing.T) {
	t.Parallel()

	now := time.Date(2021, 3, 4, 23, 59, 0, 0, time.FixedZone("x", -3600))
	if got := Today(now); got.Format(DateLayout) != "2021-03-05" {
		t.Fatalf("Today = %v", got)
	}
}
