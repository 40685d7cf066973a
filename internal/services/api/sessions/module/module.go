// Package module wires color sessions into the API using modkit
package module

import (
	"time"

	modkit "tsdash/internal/modkit"
	"tsdash/internal/modkit/httpkit"
	"tsdash/internal/modkit/repokit"
	str "tsdash/internal/platform/strings"
	sessionshttp "tsdash/internal/services/api/sessions/http"
	sessionsrepo "tsdash/internal/services/api/sessions/repo"
	sessionssvc "tsdash/internal/services/api/sessions/service"
)

// Module implements the sessions module
type Module struct {
	b     modkit.Built
	svc   sessionssvc.Service
	ports Ports
}

// New constructs the sessions module
// every session transaction runs under CORE_API_SESSION_STATEMENT_TIMEOUT
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("sessions"), modkit.WithPrefix("/sessions")}, opts...)...)

	if deps.PG == nil {
		panic("sessions module requires postgres")
	}
	timeout := deps.Cfg.MayDuration("API_SESSION_STATEMENT_TIMEOUT", 5*time.Second)
	db := repokit.WithBeginHooks(deps.PG, repokit.StatementTimeout(timeout))

	svc := sessionssvc.New(db, sessionsrepo.NewPG())
	return &Module{b: b, svc: svc, ports: Ports{Sessions: svc}}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { sessionshttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
