// Package service seeds the catalog and synthetic datapoints
package service

import (
	"context"
	"sync/atomic"
	"time"

	"tsdash/internal/modkit/repokit"
	perr "tsdash/internal/platform/errors"
	"tsdash/internal/platform/logger"
	"tsdash/internal/schema"
	seriesrepo "tsdash/internal/services/api/series/repo"
	"tsdash/internal/services/seed/domain"

	"golang.org/x/sync/errgroup"
)

// Config tunes a seeding run
type Config struct {
	Interval    time.Duration // sample spacing; <=0 -> 1m
	Span        time.Duration // history length ending at the run time; <=0 -> 7d
	Batch       int           // rows per clickhouse batch; <=0 -> 10000
	Workers     int           // series inserted in parallel; <=0 -> 2
	Seed        int64
	ApplySchema bool
}

// Service writes the demo catalog to postgres and samples to clickhouse
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[seriesrepo.Repo]
	CH     repokit.Clickhouse
	Cfg    Config
	Log    logger.Logger
}

// New constructs the seeder
func New(db repokit.TxRunner, binder repokit.Binder[seriesrepo.Repo], ch repokit.Clickhouse, cfg Config, log logger.Logger) *Service {
	if db == nil {
		panic("seed.Service requires a non nil TxRunner")
	}
	if ch == nil {
		panic("seed.Service requires clickhouse")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Span <= 0 {
		cfg.Span = 7 * 24 * time.Hour
	}
	if cfg.Batch <= 0 {
		cfg.Batch = 10_000
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	return &Service{DB: db, Binder: binder, CH: ch, Cfg: cfg, Log: log}
}

// Run applies the schema when asked, upserts specs, then writes samples up to end
func (s *Service) Run(ctx context.Context, specs []domain.Spec, end time.Time) (domain.Report, error) {
	end = end.UTC().Truncate(s.Cfg.Interval)
	rep := domain.Report{Start: end.Add(-s.Cfg.Span), End: end}

	if s.Cfg.ApplySchema {
		if err := schema.ApplyPG(ctx, s.DB); err != nil {
			return rep, perr.Wrap(err, perr.ErrorCodeDB, "apply pg schema")
		}
		if err := schema.ApplyCH(ctx, s.CH); err != nil {
			return rep, perr.Wrap(err, perr.ErrorCodeUnavailable, "apply ch schema")
		}
		s.Log.Info().Msg("schema applied")
	}

	err := repokit.WithTx(ctx, s.DB, func(q repokit.Queryer) error {
		r := repokit.MustBind(s.Binder, q)
		for _, sp := range specs {
			if err := r.Upsert(ctx, seriesrepo.Row{
				ExternalID:  sp.ExternalID,
				Name:        sp.Name,
				Unit:        sp.Unit,
				Description: sp.Description,
				IsString:    sp.IsString,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return rep, err
	}
	rep.Series = len(specs)

	var points atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Cfg.Workers)
	for _, sp := range specs {
		sp := sp
		g.Go(func() error {
			rows := Generate(sp, rep.Start, rep.End, s.Cfg.Interval, s.Cfg.Seed)
			if err := s.insert(gctx, rows); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeUnavailable, "insert %s", sp.ExternalID)
			}
			points.Add(int64(len(rows)))
			s.Log.Debug().Str("series", sp.ExternalID).Int("points", len(rows)).Msg("series seeded")
			return nil
		})
	}
	err = g.Wait()
	rep.Points = points.Load()
	return rep, err
}

func (s *Service) insert(ctx context.Context, rows [][]any) error {
	for len(rows) > 0 {
		n := min(len(rows), s.Cfg.Batch)
		if err := s.CH.Insert(ctx, schema.Datapoints, rows[:n]); err != nil {
			return err
		}
		rows = rows[n:]
	}
	return nil
}
