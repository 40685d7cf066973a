// Package module wires plots into the API using modkit
package module

import (
	"time"

	"tsdash/internal/core/palette"
	modkit "tsdash/internal/modkit"
	"tsdash/internal/modkit/httpkit"
	str "tsdash/internal/platform/strings"
	plothttp "tsdash/internal/services/api/plot/http"
	plotrepo "tsdash/internal/services/api/plot/repo"
	plotsvc "tsdash/internal/services/api/plot/service"
	seriesdomain "tsdash/internal/services/api/series/domain"
	sessionsdomain "tsdash/internal/services/api/sessions/domain"
)

// Ports are what the plot module needs from other modules
// pass them with modkit.WithPorts
type Ports struct {
	Series   seriesdomain.Retriever
	Sessions sessionsdomain.Port
}

// Module implements the plot module
type Module struct {
	b   modkit.Built
	svc plotsvc.Service
}

// New constructs the plot module
// CORE_API_PALETTE_SCOPE, CORE_API_FETCH_CONCURRENCY, CORE_API_RAW_LIMIT and
// CORE_API_RENDER_CONCURRENCY tune it
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	limit := deps.Cfg.MayIntIn("API_RENDER_CONCURRENCY", 16, 1, 1024)
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("plot"),
		modkit.WithPrefix("/plot"),
		modkit.WithMiddlewares(httpkit.Throttle(limit, 4*limit, 10*time.Second)),
	}, opts...)...)

	in, ok := b.Ports.(Ports)
	if !ok || in.Series == nil {
		panic("plot module requires Ports with a series retriever")
	}
	scope, err := palette.ParseScope(deps.Cfg.MayEnum("API_PALETTE_SCOPE", "session", "session", "process"))
	if err != nil {
		panic(err)
	}
	cfg := plotsvc.Config{
		FetchConcurrency: deps.Cfg.MayIntIn("API_FETCH_CONCURRENCY", 4, 1, 64),
		RawLimit:         deps.Cfg.MayIntIn("API_RAW_LIMIT", 100_000, 1, 10_000_000),
		Scope:            scope,
	}
	log := deps.Named("plot")
	log.Info().
		Str("palette_scope", string(cfg.Scope)).
		Int("fetch_concurrency", cfg.FetchConcurrency).
		Int("render_concurrency", limit).
		Msg("plot module ready")

	svc := plotsvc.New(cfg, plotrepo.NewCH(deps.CH), in.Series, in.Sessions)
	return &Module{b: b, svc: svc}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { plothttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports returns nothing; plot only consumes
func (m *Module) Ports() any { return nil }
