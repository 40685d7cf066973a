// Package http provides http transport for color sessions
package http

import (
	stdhttp "net/http"

	"tsdash/internal/modkit/httpkit"
	"tsdash/internal/modkit/swaggerkit"
	"tsdash/internal/services/api/sessions/domain"
)

// Register mounts session endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	r.Post("/", httpkit.Handle(h.create))
	httpkit.Get(r, "/{id}/colors", h.colors)
	httpkit.PutJSON[domain.PutColorsInput](r, "/{id}/colors", h.putColors)
	httpkit.Delete(r, "/{id}/colors", h.resetColors)

	swaggerkit.Schema("PutColorsInput", map[string]any{
		"type":       "object",
		"required":   []any{"colors"},
		"properties": map[string]any{"colors": map[string]any{"type": "string"}},
	})
	swaggerkit.Document(
		swaggerkit.Op{Method: "POST", Path: "/sessions", Summary: "Create a color session", Tag: "Sessions"},
		swaggerkit.Op{Method: "GET", Path: "/sessions/{id}/colors", Summary: "Read a session color lookup", Tag: "Sessions"},
		swaggerkit.Op{Method: "PUT", Path: "/sessions/{id}/colors", Summary: "Replace a session color lookup", Tag: "Sessions", Body: "PutColorsInput"},
		swaggerkit.Op{Method: "DELETE", Path: "/sessions/{id}/colors", Summary: "Reset a session color lookup", Tag: "Sessions"},
	)
}

type handlers struct{ svc domain.ServicePort }

func (h *handlers) create(r *stdhttp.Request) httpkit.Response {
	s, err := h.svc.Create(r.Context())
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Created(s)
}

func (h *handlers) colors(r *stdhttp.Request) (any, error) {
	return h.svc.Colors(r.Context(), httpkit.URLParam(r, "id"))
}

func (h *handlers) putColors(r *stdhttp.Request, in domain.PutColorsInput) (any, error) {
	return h.svc.PutColors(r.Context(), httpkit.URLParam(r, "id"), in.Colors)
}

func (h *handlers) resetColors(r *stdhttp.Request) (any, error) {
	return h.svc.ResetColors(r.Context(), httpkit.URLParam(r, "id"))
}
