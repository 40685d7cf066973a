// Package service contains plot workflows
package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"tsdash/internal/core/figure"
	"tsdash/internal/core/granularity"
	"tsdash/internal/core/palette"
	"tsdash/internal/core/timewindow"
	perr "tsdash/internal/platform/errors"
	"tsdash/internal/platform/logger"
	ptime "tsdash/internal/platform/time"
	"tsdash/internal/services/api/plot/domain"
	"tsdash/internal/services/api/plot/repo"
	seriesdomain "tsdash/internal/services/api/series/domain"
	sessionsdomain "tsdash/internal/services/api/sessions/domain"

	"golang.org/x/sync/errgroup"
)

// Service defines the plot service contract
type Service interface {
	domain.ServicePort
}

// Config tunes fetching and color ownership
type Config struct {
	FetchConcurrency int
	RawLimit         int
	Scope            palette.Scope
}

// Svc implements the plot service
type Svc struct {
	cfg      Config
	repo     repo.Repo
	series   seriesdomain.Retriever
	sessions sessionsdomain.Port
	assigner *palette.Assigner
	now      func() time.Time
}

// New constructs a plot service; sessions may be nil, then session_id renders fail UNAVAILABLE
func New(cfg Config, r repo.Repo, series seriesdomain.Retriever, sessions sessionsdomain.Port) *Svc {
	if r == nil {
		panic("plot.Service requires a datapoint repo")
	}
	if series == nil {
		panic("plot.Service requires a series retriever")
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = 4
	}
	if cfg.RawLimit <= 0 {
		cfg.RawLimit = 100_000
	}
	if cfg.Scope == "" {
		cfg.Scope = palette.ScopeSession
	}
	return &Svc{
		cfg:      cfg,
		repo:     r,
		series:   series,
		sessions: sessions,
		assigner: palette.NewAssigner(cfg.Scope, nil),
		now:      time.Now,
	}
}

// Render resolves granularity, assigns colors, fetches datapoints and builds the figure
func (s *Svc) Render(ctx context.Context, in domain.RenderInput) (domain.RenderOutput, error) {
	if err := checkCount(in.Series); err != nil {
		return domain.RenderOutput{}, err
	}
	w, err := timewindow.Window{Start: in.Start, End: in.End}.Normalize()
	if err != nil {
		return domain.RenderOutput{}, perr.WithField(err, "end")
	}
	g := granularity.Resolve(w, in.RawThresholdMinutes, in.Points)

	meta, err := s.series.RetrieveMultiple(ctx, in.Series)
	if err != nil {
		return domain.RenderOutput{}, err
	}
	for _, m := range meta {
		if m.IsString {
			return domain.RenderOutput{}, perr.WithField(perr.InvalidArgf("series %s holds strings and cannot be plotted", m.ExternalID), "series")
		}
	}

	pairs, lookup, err := s.assign(ctx, in)
	if err != nil {
		return domain.RenderOutput{}, err
	}

	points, err := s.fetch(ctx, in.Series, w, g)
	if err != nil {
		return domain.RenderOutput{}, err
	}

	plots := make([]figure.Plot, len(meta))
	for i, m := range meta {
		plots[i] = figure.Plot{
			Series: figure.Series{ExternalID: m.ExternalID, Name: m.Name},
			Colors: pairs[i],
			Points: points[i],
		}
	}
	fig, err := figure.Build(w, g, plots)
	if err != nil {
		return domain.RenderOutput{}, err
	}

	blob, err := palette.MarshalLookup(lookup)
	if err != nil {
		return domain.RenderOutput{}, perr.Wrap(err, perr.ErrorCodeUnknown, "encode color lookup")
	}

	logger.C(ctx).Debug().
		Str("granularity", g.Code).
		Int("series", len(meta)).
		Int64("window_ms", w.Duration()).
		Msg("plot render")

	return domain.RenderOutput{
		Figure:      fig,
		Granularity: granularityOut(g),
		Colors:      string(blob),
		Series:      meta,
	}, nil
}

// assign reads the prior lookup from the session or the blob and grows it
// session lookups are grown under the session row lock; a lookup that already
// covers every id is read without taking it
func (s *Svc) assign(ctx context.Context, in domain.RenderInput) ([]palette.ColorPair, palette.Lookup, error) {
	if sid := strings.TrimSpace(in.SessionID); sid != "" {
		if s.sessions == nil {
			return nil, nil, perr.Unavailablef("color sessions are not available")
		}
		ctx = logger.WithSession(ctx, sid)
		stored, err := s.sessions.Load(ctx, sid)
		if err != nil {
			return nil, nil, err
		}
		if stored.Has(in.Series...) {
			pairs, next := s.assigner.Assign(in.Series, stored)
			return pairs, next, nil
		}

		var pairs []palette.ColorPair
		lk, err := s.sessions.Update(ctx, sid, func(prior palette.Lookup) (palette.Lookup, error) {
			var next palette.Lookup
			pairs, next = s.assigner.Assign(in.Series, prior)
			return next, nil
		})
		if err != nil {
			return nil, nil, err
		}
		return pairs, lk, nil
	}

	prior, err := palette.UnmarshalLookup([]byte(in.Colors))
	if err != nil {
		return nil, nil, err
	}
	pairs, next := s.assigner.Assign(in.Series, prior)
	return pairs, next, nil
}

// fetch reads every series concurrently, results keep input order
func (s *Svc) fetch(ctx context.Context, ids []string, w timewindow.Window, g granularity.Result) ([]figure.Points, error) {
	out := make([]figure.Points, len(ids))
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(s.cfg.FetchConcurrency)
	for i, id := range ids {
		i, id := i, id
		eg.Go(func() error {
			var (
				p   figure.Points
				err error
			)
			if g.IsRaw() {
				p, err = s.repo.Raw(ectx, id, w, s.cfg.RawLimit)
				if err == nil && p.Len() >= s.cfg.RawLimit {
					logger.C(ctx).Warn().Str("series", id).Int("limit", s.cfg.RawLimit).Msg("raw datapoints truncated")
				}
			} else {
				p, err = s.repo.Aggregated(ectx, id, w, g.Seconds())
			}
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Granularity is the resolver exposed as a service
func (s *Svc) Granularity(_ context.Context, in domain.GranularityInput) (domain.GranularityOut, error) {
	w, err := timewindow.Window{Start: in.Start, End: in.End}.Normalize()
	if err != nil {
		return domain.GranularityOut{}, perr.WithField(err, "end")
	}
	return granularityOut(granularity.Resolve(w, in.RawThresholdMinutes, in.Points)), nil
}

// Colors is the assigner exposed as a service; it never touches sessions
func (s *Svc) Colors(_ context.Context, in domain.ColorsInput) (domain.ColorsOut, error) {
	prior, err := palette.UnmarshalLookup([]byte(in.Colors))
	if err != nil {
		return domain.ColorsOut{}, err
	}
	pairs, next := s.assigner.Assign(in.Series, prior)
	blob, err := palette.MarshalLookup(next)
	if err != nil {
		return domain.ColorsOut{}, perr.Wrap(err, perr.ErrorCodeUnknown, "encode color lookup")
	}
	out := domain.ColorsOut{Colors: make([]domain.ColorEntry, len(pairs)), Lookup: string(blob)}
	for i, p := range pairs {
		out.Colors[i] = domain.ColorEntry{
			ID:      in.Series[i],
			Fill:    p.Fill,
			Line:    p.Line,
			FillCSS: p.Fill.CSS(),
			LineCSS: p.Line.CSS(),
		}
	}
	return out, nil
}

// Options lists the control defaults
func (s *Svc) Options(context.Context) domain.Options {
	marks := map[int]string{0: "OFF", 20: "", 40: "", 60: "1h", 90: ""}
	for h := 2; h <= 12; h++ {
		marks[h*60] = strconv.Itoa(h) + "h"
	}
	today := ptime.Today(s.now())
	return domain.Options{
		Resolutions: []domain.Choice{
			{Label: "Extreme", Value: 750},
			{Label: "High", Value: 400},
			{Label: "Standard", Value: 250},
			{Label: "Low", Value: 100},
		},
		DefaultResolution: 250,
		RawThreshold:      domain.Slider{Min: 0, Max: 720, Step: 10, Default: 90, Marks: marks},
		DateRange: domain.DateRange{
			StartDate: today.AddDate(0, 0, -7).Format(ptime.DateLayout),
			EndDate:   today.Format(ptime.DateLayout),
		},
		MaxSeries:    domain.MaxSimultaneousPlots,
		PaletteScope: string(s.cfg.Scope),
	}
}

// Window derives the chart window; a y only zoom is timewindow.ErrNoUpdate
func (s *Svc) Window(_ context.Context, in domain.WindowInput) (timewindow.Window, error) {
	w, err := timewindow.FromRelayout(in.Relayout, in.StartDate, in.EndDate)
	if err != nil {
		return timewindow.Window{}, err
	}
	w, err = w.Normalize()
	if err != nil {
		return timewindow.Window{}, perr.WithField(err, "relayout")
	}
	return w, nil
}

func checkCount(ids []string) error {
	switch {
	case len(ids) == 0:
		return perr.WithField(perr.InvalidArgf("pick at least one series"), "series")
	case len(ids) > domain.MaxSimultaneousPlots:
		return perr.WithField(perr.Limitf("at most %d series can be plotted together, got %d", domain.MaxSimultaneousPlots, len(ids)), "series")
	}
	return nil
}

func granularityOut(g granularity.Result) domain.GranularityOut {
	return domain.GranularityOut{Code: g.Code, Label: g.Label, Raw: g.IsRaw(), Seconds: g.Seconds()}
}
