// Package module wires the seeder from shared deps; it mounts no routes
package module

import (
	"context"
	"time"

	"tsdash/internal/modkit"
	"tsdash/internal/modkit/httpkit"
	seriesrepo "tsdash/internal/services/api/series/repo"
	"tsdash/internal/services/seed/domain"
	"tsdash/internal/services/seed/service"
)

// Runner is the port the seeder cmd drives
type Runner interface {
	Run(ctx context.Context, specs []domain.Spec, end time.Time) (domain.Report, error)
}

// Ports exposes the seeder
type Ports struct {
	Runner Runner
}

// Module implements the seed module
type Module struct {
	ports Ports
}

// New builds the seeder from deps; cfg is usually FromConfig(root)
func New(deps modkit.Deps, cfg service.Config) *Module {
	svc := service.New(deps.PG, seriesrepo.NewPG(), deps.CH, cfg, deps.Named("seed"))
	return &Module{ports: Ports{Runner: svc}}
}

// Name returns the module name
func (m *Module) Name() string { return "seed" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op; the seeder has no routes
func (m *Module) MountRoutes(httpkit.Router) {}
