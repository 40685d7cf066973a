package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tsdash/internal/core/figure"
	"tsdash/internal/core/palette"
	"tsdash/internal/core/timewindow"
	perr "tsdash/internal/platform/errors"
	"tsdash/internal/platform/testkit"
	"tsdash/internal/services/api/plot/domain"
	seriesdomain "tsdash/internal/services/api/series/domain"
)

const (
	hour = int64(3_600_000)
	t0   = int64(1_614_816_000_000) // 2021-03-04
)

type fakeRepo struct {
	mu       sync.Mutex
	raw, agg []string
	buckets  []int64
	inflight atomic.Int32
	peak     atomic.Int32
	failFor  string
	sleep    time.Duration
}

func (f *fakeRepo) enter() func() {
	n := f.inflight.Add(1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(f.sleep)
	return func() { f.inflight.Add(-1) }
}

func (f *fakeRepo) Aggregated(_ context.Context, id string, w timewindow.Window, bucketSec int64) (figure.Points, error) {
	defer f.enter()()
	f.mu.Lock()
	f.agg = append(f.agg, id)
	f.buckets = append(f.buckets, bucketSec)
	f.mu.Unlock()
	if id == f.failFor {
		return figure.Points{}, perr.Unavailablef("clickhouse down")
	}
	return figure.Points{
		Timestamps: []int64{w.Start},
		Average:    []float64{float64(len(id))},
		Min:        []float64{0},
		Max:        []float64{10},
	}, nil
}

func (f *fakeRepo) Raw(_ context.Context, id string, w timewindow.Window, _ int) (figure.Points, error) {
	defer f.enter()()
	f.mu.Lock()
	f.raw = append(f.raw, id)
	f.mu.Unlock()
	return figure.Points{Timestamps: []int64{w.Start - 1, w.Start}, Value: []float64{1, 2}}, nil
}

type fakeSeries struct{}

func (fakeSeries) RetrieveMultiple(_ context.Context, ids []string) ([]seriesdomain.Series, error) {
	out := make([]seriesdomain.Series, 0, len(ids))
	for _, id := range ids {
		switch id {
		case "missing":
			return nil, perr.NotFoundf("unknown series: %s", id)
		case "text":
			out = append(out, seriesdomain.Series{ExternalID: id, Name: "Text", IsString: true})
		default:
			out = append(out, seriesdomain.Series{ExternalID: id, Name: "Name " + id})
		}
	}
	return out, nil
}

type fakeSessions struct {
	stored palette.Lookup
	calls  int
	loads  int
}

func (f *fakeSessions) Load(context.Context, string) (palette.Lookup, error) {
	f.loads++
	return f.stored.Clone(), nil
}

func (f *fakeSessions) Update(_ context.Context, _ string, fn func(palette.Lookup) (palette.Lookup, error)) (palette.Lookup, error) {
	f.calls++
	next, err := fn(f.stored.Clone())
	if err != nil {
		return nil, err
	}
	f.stored = next
	return next, nil
}

func newSvc(r *fakeRepo, sessions *fakeSessions) *Svc {
	var port interface {
		Load(context.Context, string) (palette.Lookup, error)
		Update(context.Context, string, func(palette.Lookup) (palette.Lookup, error)) (palette.Lookup, error)
	}
	if sessions != nil {
		port = sessions
	}
	s := New(Config{FetchConcurrency: 2}, r, fakeSeries{}, port)
	s.now = func() time.Time { return time.Date(2021, 3, 4, 15, 0, 0, 0, time.UTC) }
	return s
}

func render(ids ...string) domain.RenderInput {
	return domain.RenderInput{Series: ids, Start: t0, End: t0 + 24*hour, RawThresholdMinutes: 90, Points: 250}
}

func TestRenderCountLimits(t *testing.T) {
	s := newSvc(&fakeRepo{}, nil)
	if _, err := s.Render(context.Background(), render()); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("empty err=%v", err)
	}
	_, err := s.Render(context.Background(), render("a", "b", "c", "d", "e", "f"))
	if !perr.IsCode(err, perr.ErrorCodeLimitExceeded) {
		t.Fatalf("six err=%v", err)
	}
	if e, _ := perr.As(err); e.Field() != "series" {
		t.Fatalf("field=%q", e.Field())
	}
	if _, err := s.Render(context.Background(), render("a", "b", "c", "d", "e")); err != nil {
		t.Fatalf("five err=%v", err)
	}
}

func TestRenderAggregated(t *testing.T) {
	r := &fakeRepo{}
	s := newSvc(r, nil)
	out, err := s.Render(context.Background(), render("temp", "press"))
	if err != nil {
		t.Fatal(err)
	}
	// 86400s over 250 points is 345.6s, 5.76 min, rounds to 6m
	if out.Granularity.Code != "6m" || out.Granularity.Raw || out.Granularity.Seconds != 360 {
		t.Fatalf("granularity=%+v", out.Granularity)
	}
	if len(r.agg) != 2 || r.buckets[0] != 360 {
		t.Fatalf("agg=%v buckets=%v", r.agg, r.buckets)
	}
	if len(out.Figure.Data) != 6 || out.Figure.Data[2].Name != "Name temp" || out.Figure.Data[5].Name != "Name press" {
		t.Fatalf("traces=%d", len(out.Figure.Data))
	}
	if out.Figure.Layout.Title.Text != "Aggregate: Average. Granularity: 6 mins" {
		t.Fatalf("title=%q", out.Figure.Layout.Title.Text)
	}

	lk, err := palette.UnmarshalLookup([]byte(out.Colors))
	if err != nil || len(lk) != 2 {
		t.Fatalf("lookup=%v err=%v", lk, err)
	}

	// carrying the blob keeps colors and continues the palette
	next := render("press", "flow")
	next.Colors = out.Colors
	out2, err := s.Render(context.Background(), next)
	if err != nil {
		t.Fatal(err)
	}
	lk2, _ := palette.UnmarshalLookup([]byte(out2.Colors))
	if lk2["press"] != lk["press"] || len(lk2) != 3 {
		t.Fatalf("lookup2=%v", lk2)
	}
	p := palette.Paired()
	if lk2["flow"] != (palette.ColorPair{Fill: p[4], Line: p[5]}) {
		t.Fatalf("flow=%+v", lk2["flow"])
	}
}

func TestRenderRawSingleSeries(t *testing.T) {
	r := &fakeRepo{}
	s := newSvc(r, nil)
	in := render("temp")
	in.End = t0 + hour
	out, err := s.Render(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Granularity.Raw || len(r.raw) != 1 || len(r.agg) != 0 {
		t.Fatalf("g=%+v raw=%v agg=%v", out.Granularity, r.raw, r.agg)
	}
	testkit.MustContain(t, out.Figure.Layout.Title.Text, "Name temp [temp]. Aggregate: Not used")
}

func TestRenderRejects(t *testing.T) {
	s := newSvc(&fakeRepo{}, nil)
	ctx := context.Background()

	in := render("temp")
	in.Start, in.End = in.End, in.Start
	if _, err := s.Render(ctx, in); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("reversed err=%v", err)
	}
	if _, err := s.Render(ctx, render("missing")); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing err=%v", err)
	}
	if _, err := s.Render(ctx, render("text")); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("string series err=%v", err)
	}
	in = render("temp")
	in.Colors = `{"temp":`
	if _, err := s.Render(ctx, in); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("bad blob err=%v", err)
	}
	in = render("temp")
	in.SessionID = "6f1c1f3e-8a0b-4a59-9a53-0d8f5e7a1b2c"
	if _, err := s.Render(ctx, in); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("no sessions err=%v", err)
	}
}

func TestRenderFetchErrorWins(t *testing.T) {
	r := &fakeRepo{failFor: "b"}
	s := newSvc(r, nil)
	_, err := s.Render(context.Background(), render("a", "b", "c"))
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err=%v", err)
	}
}

func TestRenderFetchIsBounded(t *testing.T) {
	r := &fakeRepo{sleep: 20 * time.Millisecond}
	s := newSvc(r, nil)
	if _, err := s.Render(context.Background(), render("a", "b", "c", "d", "e")); err != nil {
		t.Fatal(err)
	}
	if p := r.peak.Load(); p > 2 {
		t.Fatalf("peak concurrency %d > 2", p)
	}
}

func TestRenderWithSession(t *testing.T) {
	sess := &fakeSessions{stored: palette.Lookup{}}
	s := newSvc(&fakeRepo{}, sess)
	in := render("temp")
	in.SessionID = "6f1c1f3e-8a0b-4a59-9a53-0d8f5e7a1b2c"
	in.Colors = "ignored garbage"

	out, err := s.Render(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if sess.calls != 1 || len(sess.stored) != 1 {
		t.Fatalf("calls=%d stored=%v", sess.calls, sess.stored)
	}
	blob, _ := palette.MarshalLookup(sess.stored)
	if out.Colors != string(blob) {
		t.Fatalf("colors=%s want %s", out.Colors, blob)
	}
}

func TestRenderWithSession_KnownIdsSkipTheLock(t *testing.T) {
	sess := &fakeSessions{stored: palette.Lookup{}}
	s := newSvc(&fakeRepo{}, sess)
	in := render("temp", "hum")
	in.SessionID = "6f1c1f3e-8a0b-4a59-9a53-0d8f5e7a1b2c"

	first, err := s.Render(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	in.Series = []string{"hum"}
	again, err := s.Render(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if sess.loads != 2 || sess.calls != 1 {
		t.Fatalf("loads=%d updates=%d", sess.loads, sess.calls)
	}
	if again.Colors != first.Colors {
		t.Fatalf("lookup moved: %s -> %s", first.Colors, again.Colors)
	}

	in.Series = []string{"hum", "cpu"}
	if _, err := s.Render(context.Background(), in); err != nil {
		t.Fatal(err)
	}
	if sess.calls != 2 || len(sess.stored) != 3 {
		t.Fatalf("updates=%d stored=%v", sess.calls, sess.stored)
	}
}

func TestGranularityService(t *testing.T) {
	s := newSvc(&fakeRepo{}, nil)
	out, err := s.Granularity(context.Background(), domain.GranularityInput{Start: t0, End: t0, RawThresholdMinutes: 0, Points: 250})
	if err != nil {
		t.Fatal(err)
	}
	if out.Code != "1s" || out.Seconds != 1 {
		t.Fatalf("out=%+v", out)
	}
}

func TestColorsService(t *testing.T) {
	s := newSvc(&fakeRepo{}, nil)
	out, err := s.Colors(context.Background(), domain.ColorsInput{Series: []string{"a", "b", "a"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Colors) != 3 || out.Colors[0].FillCSS != "rgb(166,206,227)" || out.Colors[0].LineCSS != "rgb(31,120,180)" {
		t.Fatalf("colors=%+v", out.Colors)
	}
	if out.Colors[2].ID != "a" || out.Colors[2].Fill != out.Colors[0].Fill {
		t.Fatalf("dup=%+v", out.Colors[2])
	}
	testkit.MustContain(t, out.Lookup, `"b":{"fillcolor"`)
}

func TestOptions(t *testing.T) {
	s := newSvc(&fakeRepo{}, nil)
	o := s.Options(context.Background())
	if o.DefaultResolution != 250 || len(o.Resolutions) != 4 || o.Resolutions[0].Value != 750 {
		t.Fatalf("resolutions=%+v", o.Resolutions)
	}
	m := o.RawThreshold.Marks
	if m[0] != "OFF" || m[60] != "1h" || m[120] != "2h" || m[720] != "12h" || len(m) != 16 {
		t.Fatalf("marks=%v", m)
	}
	if o.DateRange != (domain.DateRange{StartDate: "2021-02-25", EndDate: "2021-03-04"}) {
		t.Fatalf("range=%+v", o.DateRange)
	}
	if o.MaxSeries != 5 || o.PaletteScope != "session" {
		t.Fatalf("o=%+v", o)
	}
}

func TestWindow(t *testing.T) {
	s := newSvc(&fakeRepo{}, nil)
	ctx := context.Background()

	w, err := s.Window(ctx, domain.WindowInput{StartDate: "2021-03-04", EndDate: "2021-03-04"})
	if err != nil || w.Start != t0 || w.End != t0+24*hour {
		t.Fatalf("w=%+v err=%v", w, err)
	}
	_, err = s.Window(ctx, domain.WindowInput{
		Relayout:  map[string]any{"yaxis.range[0]": 1.0},
		StartDate: "2021-03-04", EndDate: "2021-03-04",
	})
	if !errors.Is(err, timewindow.ErrNoUpdate) {
		t.Fatalf("err=%v", err)
	}

	// a zoom dragged right to left
	_, err = s.Window(ctx, domain.WindowInput{
		Relayout: map[string]any{"xaxis.range[0]": float64(t0 + hour), "xaxis.range[1]": float64(t0)},
	})
	if fe, ok := perr.As(err); !ok || fe.Code() != perr.ErrorCodeInvalidArgument || fe.Field() != "relayout" {
		t.Fatalf("reversed zoom err=%v", err)
	}

	w, err = s.Window(ctx, domain.WindowInput{
		Relayout: map[string]any{"xaxis.range[0]": float64(t0), "xaxis.range[1]": float64(t0)},
	})
	if err != nil || w.Start != t0 || w.End != t0+1 {
		t.Fatalf("point zoom w=%+v err=%v", w, err)
	}
}
