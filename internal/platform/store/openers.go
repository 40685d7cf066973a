package store

import (
	"context"
	"fmt"
	"time"

	chx "tsdash/internal/platform/store/ch"
	"tsdash/internal/platform/store/pg"
)

const (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// sleep is swapped in tests
var sleep = func(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// pingWithRetry pings until success, ctx end, or attempts run out
func pingWithRetry(ctx context.Context, attempts int, timeout time.Duration, ping func(context.Context) error) error {
	if attempts <= 0 {
		attempts = 1
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = ping(toCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i == attempts-1 {
			break
		}
		sleep(ctx, backoff)
		if backoff < backoffCeiling {
			backoff = min(backoff*2, backoffCeiling)
		}
	}
	return fmt.Errorf("ping failed after %d attempts: %w", attempts, lastErr)
}

// openPG opens the pool and publishes the adapter once the pool answers
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer, s.poolHook())
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	// ping the pool directly so boot probes stay out of the SQL trace
	if err := pingWithRetry(ctx, cfg.PG.ConnectRetries, cfg.PG.PingTimeout, p.Ping); err != nil {
		p.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return newPGAdapter(p), nil
}

// openCH dials clickhouse and waits for the server the same way
func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	chCfg := chx.Config{
		URL:         cfg.CH.URL,
		Role:        cfg.CH.Role,
		Tag:         cfg.CH.Tag,
		DialTimeout: cfg.CH.DialTimeout,
	}
	if cfg.CH.LogSQL {
		l := s.Log.With().Str("component", "ch").Logger()
		chCfg.Debugf = func(format string, v ...any) { l.Info().Msgf(format, v...) }
	}
	c, err := chx.Open(ctx, chCfg)
	if err != nil {
		return nil, err
	}
	if err := pingWithRetry(ctx, cfg.CH.ConnectRetries, cfg.CH.PingTimeout, c.Ping); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("clickhouse: %w", err)
	}
	return newCHAdapter(c), nil
}
