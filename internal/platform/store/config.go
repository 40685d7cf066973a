package store

import (
	"time"

	"tsdash/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled     bool
	URL         string
	LogSQL      bool
	Role        string
	Tag         string
	DialTimeout time.Duration

	ConnectRetries int
	PingTimeout    time.Duration
}

// FromEnv reads PG_* and CH_* keys under cfg, e.g. CORE_PG_URL
// a backend is enabled when its URL is set
func FromEnv(cfg config.Conf, appName, role string) Config {
	pgURL := cfg.MayString("PG_URL", "")
	chURL := cfg.MayString("CH_URL", "")
	return Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:        pgURL != "",
			URL:            pgURL,
			MaxConns:       int32(cfg.MayIntIn("PG_MAX_CONNS", 10, 1, 200)),
			LogSQL:         cfg.MayBool("PG_LOG_SQL", false),
			SlowQueryMs:    cfg.MayInt("PG_SLOW_MS", 200),
			ConnectRetries: cfg.MayIntIn("PG_CONNECT_RETRIES", 20, 1, 100),
			PingTimeout:    cfg.MayDuration("PG_PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled:        chURL != "",
			URL:            chURL,
			LogSQL:         cfg.MayBool("CH_LOG_SQL", false),
			Role:           role,
			Tag:            cfg.MayString("CH_TAG", appName),
			DialTimeout:    cfg.MayDuration("CH_DIAL_TIMEOUT", 5*time.Second),
			ConnectRetries: cfg.MayIntIn("CH_CONNECT_RETRIES", 20, 1, 100),
			PingTimeout:    cfg.MayDuration("CH_PING_TIMEOUT", 3*time.Second),
		},
	}
}
