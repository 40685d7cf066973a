// Package http provides http transport for plots
package http

import (
	"errors"
	stdhttp "net/http"

	"tsdash/internal/core/timewindow"
	"tsdash/internal/modkit/httpkit"
	"tsdash/internal/modkit/swaggerkit"
	"tsdash/internal/services/api/plot/domain"
)

// Register mounts plot endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// full chart with colors carried over
	httpkit.PostJSON[domain.RenderInput](r, "/render", h.render)

	// pure helpers
	httpkit.PostJSON[domain.GranularityInput](r, "/granularity", h.granularity)
	httpkit.PostJSON[domain.ColorsInput](r, "/colors", h.colors)
	httpkit.Get(r, "/options", h.options)

	// 204 when the zoom does not move the window
	r.Post("/window", httpkit.Handle(h.window))

	document()
}

type handlers struct{ svc domain.ServicePort }

func (h *handlers) render(r *stdhttp.Request, in domain.RenderInput) (any, error) {
	return h.svc.Render(r.Context(), in)
}

func (h *handlers) granularity(r *stdhttp.Request, in domain.GranularityInput) (any, error) {
	return h.svc.Granularity(r.Context(), in)
}

func (h *handlers) colors(r *stdhttp.Request, in domain.ColorsInput) (any, error) {
	return h.svc.Colors(r.Context(), in)
}

func (h *handlers) options(r *stdhttp.Request) (any, error) {
	return h.svc.Options(r.Context()), nil
}

func (h *handlers) window(r *stdhttp.Request) httpkit.Response {
	in, err := httpkit.Parse[domain.WindowInput](r)
	if err != nil {
		return httpkit.Error(err)
	}
	w, err := h.svc.Window(r.Context(), in)
	if errors.Is(err, timewindow.ErrNoUpdate) {
		return httpkit.NoContent()
	}
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.OK(w)
}

func document() {
	ids := map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	window := map[string]any{
		"start":                 map[string]any{"type": "integer", "format": "int64"},
		"end":                   map[string]any{"type": "integer", "format": "int64"},
		"raw_threshold_minutes": map[string]any{"type": "integer", "minimum": 0, "maximum": 720},
		"points":                map[string]any{"type": "integer", "minimum": 1},
	}
	render := map[string]any{"series": ids, "colors": map[string]any{"type": "string"}, "session_id": map[string]any{"type": "string", "format": "uuid"}}
	for k, v := range window {
		render[k] = v
	}

	swaggerkit.Schema("RenderInput", map[string]any{"type": "object", "required": []any{"series", "points"}, "properties": render})
	swaggerkit.Schema("GranularityInput", map[string]any{"type": "object", "required": []any{"points"}, "properties": window})
	swaggerkit.Schema("ColorsInput", map[string]any{"type": "object", "properties": map[string]any{"series": ids, "colors": map[string]any{"type": "string"}}})
	swaggerkit.Schema("WindowInput", map[string]any{
		"type":     "object",
		"required": []any{"start_date", "end_date"},
		"properties": map[string]any{
			"relayout":   map[string]any{"type": "object"},
			"start_date": map[string]any{"type": "string", "format": "date"},
			"end_date":   map[string]any{"type": "string", "format": "date"},
		},
	})
	swaggerkit.Document(
		swaggerkit.Op{Method: "POST", Path: "/plot/render", Summary: "Render a chart figure for up to five series", Tag: "Plot", Body: "RenderInput"},
		swaggerkit.Op{Method: "POST", Path: "/plot/granularity", Summary: "Resolve the aggregation granularity", Tag: "Plot", Body: "GranularityInput"},
		swaggerkit.Op{Method: "POST", Path: "/plot/colors", Summary: "Assign series colors", Tag: "Plot", Body: "ColorsInput"},
		swaggerkit.Op{Method: "GET", Path: "/plot/options", Summary: "Control defaults", Tag: "Plot"},
		swaggerkit.Op{Method: "POST", Path: "/plot/window", Summary: "Derive the chart window from pickers or a zoom", Tag: "Plot", Body: "WindowInput"},
	)
}
