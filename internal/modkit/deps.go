package modkit

import (
	"tsdash/internal/modkit/repokit"
	"tsdash/internal/platform/config"
	"tsdash/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// PG and CH are nil when the backend is not configured
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  repokit.Clickhouse
}

// Named returns Log tagged with a component field
func (d Deps) Named(component string) logger.Logger {
	return d.Log.With().Str("component", component).Logger()
}
