// Package module wires the series catalog into the API using modkit
package module

import (
	"time"

	modkit "tsdash/internal/modkit"
	"tsdash/internal/modkit/httpkit"
	"tsdash/internal/platform/cache"
	str "tsdash/internal/platform/strings"
	"tsdash/internal/services/api/series/domain"
	serieshttp "tsdash/internal/services/api/series/http"
	seriesrepo "tsdash/internal/services/api/series/repo"
	seriessvc "tsdash/internal/services/api/series/service"
)

// Module implements the series module
type Module struct {
	b     modkit.Built
	svc   seriessvc.Service
	ports Ports
}

// New constructs the series module; CORE_API_SERIES_CACHE_TTL sizes the metadata cache
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("series"), modkit.WithPrefix("/series")}, opts...)...)
	log := deps.Named("series")

	ttl := deps.Cfg.MayDuration("API_SERIES_CACHE_TTL", 5*time.Minute)
	c, err := cache.New[domain.Series](cache.Options{TTL: ttl})
	if err != nil {
		log.Warn().Err(err).Msg("series cache disabled")
		c = nil
	}

	svc := seriessvc.New(deps.PG, seriesrepo.NewPG(), c)
	return &Module{
		b:     b,
		svc:   svc,
		ports: Ports{Retriever: svc},
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { serieshttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
