// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"tsdash/internal/core/version"
	"tsdash/internal/modkit/httpkit"
	"tsdash/internal/modkit/swaggerkit"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName  string
	StartedAt    time.Time
	ReadyTimeout time.Duration
	PG           any
	CH           any
	Now          func() time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	r.Get("/ready", httpkit.Handle(h.ready))
	httpkit.Get(r, "/version", h.version)

	swaggerkit.Document(
		swaggerkit.Op{Method: "GET", Path: "/health", Summary: "Liveness and uptime", Tag: "Meta"},
		swaggerkit.Op{Method: "GET", Path: "/ready", Summary: "Readiness with postgres and clickhouse checks", Tag: "Meta"},
		swaggerkit.Op{Method: "GET", Path: "/version", Summary: "Build and version info", Tag: "Meta"},
	)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
	Uptime  int64  `json:"uptime"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok fail skipped unknown
	Error  string `json:"error,omitempty"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

func (h *handlers) health(_ *http.Request) (any, error) {
	now := h.deps.Now()
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     now.UTC().Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.deps.StartedAt) / time.Second),
	}, nil
}

// ready answers 503 when any configured backend fails its ping
func (h *handlers) ready(r *http.Request) httpkit.Response {
	ctx, cancel := stdctx.WithTimeout(r.Context(), h.deps.ReadyTimeout)
	defer cancel()

	check := func(name string, c any) ReadyCheck {
		if c == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		if p, ok := c.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
			}
			return ReadyCheck{Name: name, Status: "ok"}
		}
		return ReadyCheck{Name: name, Status: "unknown"}
	}

	pg := check("pg", h.deps.PG)
	ch := check("ch", h.deps.CH)

	overall := "ok"
	if pg.Status != "ok" || ch.Status != "ok" {
		overall = "degraded"
		if pg.Status == "fail" || ch.Status == "fail" {
			overall = "fail"
		}
	}

	resp := httpkit.OK(ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{pg, ch},
		Now:    h.deps.Now().UTC().Format(time.RFC3339),
	})
	if overall == "fail" {
		resp.Status = http.StatusServiceUnavailable
	}
	return resp
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}
