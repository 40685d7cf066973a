package store

import (
	"errors"

	"tsdash/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Option adjusts a Store before any backend is dialed
type Option func(*Store) error

// WithLogger sets the logger the pg tracer and clickhouse debug lines write to
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithPGPool tweaks the parsed pool config before the pool is built
// hooks run in the order given
func WithPGPool(fn func(*pgxpool.Config)) Option {
	return func(s *Store) error {
		if fn == nil {
			return errors.New("store: nil pg pool hook")
		}
		s.pgPool = append(s.pgPool, fn)
		return nil
	}
}

func (s *Store) poolHook() func(*pgxpool.Config) {
	if len(s.pgPool) == 0 {
		return nil
	}
	hooks := s.pgPool
	return func(c *pgxpool.Config) {
		for _, h := range hooks {
			h(c)
		}
	}
}
