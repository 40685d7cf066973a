// Command tsdash-seed creates the schema and fills it with demo series
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"tsdash/internal/modkit"
	"tsdash/internal/modkit/module"
	"tsdash/internal/modkit/repokit"
	"tsdash/internal/platform/config"
	"tsdash/internal/platform/logger"
	"tsdash/internal/platform/store"

	"tsdash/internal/services/seed/domain"
	seedmod "tsdash/internal/services/seed/module"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Get()

	root := config.New()
	cfg := seedmod.FromConfig(root)

	var (
		fSpan     = flag.Duration("span", cfg.Span, "history length ending now")
		fInterval = flag.Duration("interval", cfg.Interval, "sample spacing")
		fNoSchema = flag.Bool("no-schema", !cfg.ApplySchema, "skip schema creation")
	)
	flag.Parse()
	cfg.Span, cfg.Interval, cfg.ApplySchema = *fSpan, *fInterval, !*fNoSchema

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scfg := store.FromEnv(root.Prefix("CORE_"), "tsdash-seed", "seed")
	if !scfg.PG.Enabled || !scfg.CH.Enabled {
		l.Fatal().Msg("CORE_PG_URL and CORE_CH_URL are required")
	}
	st, err := store.Open(ctx, scfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	seed := seedmod.New(modkit.Deps{Log: *l, Cfg: root.Prefix("CORE_"), PG: st.PG, CH: st.CH}, cfg)
	runner := module.MustPortsOf[seedmod.Runner](seed)

	began := time.Now()
	rep, err := runner.Run(ctx, domain.Catalog(), began)
	if err != nil {
		l.Fatal().Err(err).Msg("seed failed")
	}
	l.Info().
		Int("series", rep.Series).
		Int64("points", rep.Points).
		Time("start", rep.Start).
		Time("end", rep.End).
		Dur("took", time.Since(began)).
		Msg("seed complete")
}
