// Command tsdash-api serves the dashboard HTTP API
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"tsdash/internal/modkit/repokit"
	"tsdash/internal/platform/config"
	"tsdash/internal/platform/logger"
	phttp "tsdash/internal/platform/net/http"
	"tsdash/internal/platform/store"

	"tsdash/internal/services/api"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Get()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scfg := store.FromEnv(root.Prefix("CORE_"), "tsdash-api", "api")
	if !scfg.PG.Enabled || !scfg.CH.Enabled {
		l.Fatal().
			Bool("pg", scfg.PG.Enabled).
			Bool("ch", scfg.CH.Enabled).
			Msg("CORE_PG_URL and CORE_CH_URL are required")
	}

	pgCfg := root.Prefix("CORE_PG_")
	st, err := store.Open(ctx, scfg,
		store.WithLogger(*l),
		store.WithPGPool(func(c *pgxpool.Config) {
			c.MinConns = int32(pgCfg.MayIntIn("MIN_CONNS", 1, 0, 50))
			c.HealthCheckPeriod = pgCfg.MayDuration("HEALTH_CHECK", 30*time.Second)
		}),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// reads CORE_API_PORT and the timeouts
	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), api.OptionsFromEnv(root, st))

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
