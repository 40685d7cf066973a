package timewindow

import (
	"errors"
	"testing"

	perr "tsdash/internal/platform/errors"
)

const day = int64(86_400_000)

func TestNormalize(t *testing.T) {
	t.Parallel()

	w, err := Window{Start: 5, End: 5}.Normalize()
	if err != nil || w.Duration() != 1 {
		t.Fatalf("empty window = %+v, %v", w, err)
	}
	w, err = Window{Start: 5, End: 9}.Normalize()
	if err != nil || w != (Window{Start: 5, End: 9}) {
		t.Fatalf("valid window changed: %+v, %v", w, err)
	}
	if _, err := (Window{Start: 9, End: 5}).Normalize(); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("reversed window = %v", err)
	}
}

func TestFromDates(t *testing.T) {
	t.Parallel()

	w, err := FromDates("2021-03-01", "2021-03-07")
	if err != nil {
		t.Fatalf("FromDates: %v", err)
	}
	if w.Start != 1614556800000 {
		t.Fatalf("start = %d", w.Start)
	}
	// end date is inclusive
	if w.Duration() != 7*day {
		t.Fatalf("duration = %d", w.Duration())
	}
	if w.StartTime().Day() != 1 || w.EndTime().Day() != 8 {
		t.Fatalf("times = %v %v", w.StartTime(), w.EndTime())
	}

	_, err = FromDates("03/01/2021", "2021-03-07")
	if fe, ok := perr.As(err); !ok || fe.Field() != "start_date" || fe.Code() != perr.ErrorCodeInvalidArgument {
		t.Fatalf("bad start = %v", err)
	}
	_, err = FromDates("2021-03-01", "")
	if fe, ok := perr.As(err); !ok || fe.Field() != "end_date" {
		t.Fatalf("bad end = %v", err)
	}
}

func TestFromRelayout(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		relayout  map[string]any
		want      Window
		noUpdate  bool
		wantError bool
	}{
		{
			name:     "x zoom with chart strings",
			relayout: map[string]any{keyX0: "2021-03-02 06:00:00.5", keyX1: "2021-03-02 07:00"},
			want:     Window{Start: 1614664800500, End: 1614668400000},
		},
		{
			name:     "x zoom with epoch numbers",
			relayout: map[string]any{keyX0: float64(1000), keyX1: float64(5000)},
			want:     Window{Start: 1000, End: 5000},
		},
		{
			name:     "y zoom only",
			relayout: map[string]any{keyY0: 1.5, "yaxis.range[1]": 9.0},
			noUpdate: true,
		},
		{
			name:     "autosize falls back to pickers",
			relayout: map[string]any{"autosize": true},
			want:     Window{Start: 1614556800000, End: 1614556800000 + 7*day},
		},
		{
			name:     "nil payload falls back to pickers",
			relayout: nil,
			want:     Window{Start: 1614556800000, End: 1614556800000 + 7*day},
		},
		{
			name:     "empty x0 is ignored",
			relayout: map[string]any{keyX0: "", keyX1: "2021-03-02"},
			want:     Window{Start: 1614556800000, End: 1614556800000 + 7*day},
		},
		{
			name:      "x0 without x1",
			relayout:  map[string]any{keyX0: "2021-03-02"},
			wantError: true,
		},
		{
			name:      "garbage range",
			relayout:  map[string]any{keyX0: "yesterday", keyX1: "today"},
			wantError: true,
		},
		{
			name:      "unsupported type",
			relayout:  map[string]any{keyX0: []any{1}, keyX1: 2.0},
			wantError: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := FromRelayout(c.relayout, "2021-03-01", "2021-03-07")
			switch {
			case c.noUpdate:
				if !errors.Is(err, ErrNoUpdate) {
					t.Fatalf("want ErrNoUpdate, got %v", err)
				}
			case c.wantError:
				if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
					t.Fatalf("want invalid argument, got %v", err)
				}
			default:
				if err != nil || got != c.want {
					t.Fatalf("got %+v, %v want %+v", got, err, c.want)
				}
			}
		})
	}
}
