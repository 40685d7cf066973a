// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "tsdash/internal/modkit"
	"tsdash/internal/modkit/httpkit"
	str "tsdash/internal/platform/strings"

	metahttp "tsdash/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	b         modkit.Built
	startedAt time.Time
}

// New constructs a meta module; routes sit at the root of the API
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix(""),
	}, opts...)...)

	return &Module{deps: deps, b: b, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		d := metahttp.Deps{
			ServiceName:  "tsdash-api",
			StartedAt:    m.startedAt,
			ReadyTimeout: m.deps.Cfg.MayDuration("API_READY_TIMEOUT", 2*time.Second),
		}
		// typed nils would defeat the skipped check
		if m.deps.PG != nil {
			d.PG = m.deps.PG
		}
		if m.deps.CH != nil {
			d.CH = m.deps.CH
		}
		metahttp.Register(rr, d)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }

// Prefix returns the raw prefix; meta sits at the API root
func (m *Module) Prefix() string { return m.b.Prefix }
