package module

import (
	"time"

	"tsdash/internal/platform/config"
	"tsdash/internal/services/seed/service"
)

// FromConfig reads SEED_* keys
func FromConfig(root config.Conf) service.Config {
	c := root.Prefix("SEED_")
	return service.Config{
		Interval:    c.MayDuration("INTERVAL", time.Minute),
		Span:        c.MayDuration("SPAN", 7*24*time.Hour),
		Batch:       c.MayIntIn("BATCH", 10_000, 1, 1_000_000),
		Workers:     c.MayIntIn("WORKERS", 2, 1, 32),
		Seed:        int64(c.MayInt("RANDOM_SEED", 1)),
		ApplySchema: c.MayBool("APPLY_SCHEMA", true),
	}
}
