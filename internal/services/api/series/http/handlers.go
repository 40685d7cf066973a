// Package http provides http transport for the series catalog
package http

import (
	stdhttp "net/http"

	"tsdash/internal/modkit/httpkit"
	"tsdash/internal/modkit/swaggerkit"
	"tsdash/internal/services/api/series/domain"
	svc "tsdash/internal/services/api/series/service"
)

// Register mounts series endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{external_id}", h.get)

	swaggerkit.Document(
		swaggerkit.Op{Method: "GET", Path: "/series", Summary: "List numeric series with dropdown options", Tag: "Series"},
		swaggerkit.Op{Method: "GET", Path: "/series/{external_id}", Summary: "Get one series", Tag: "Series"},
	)
}

type handlers struct{ svc svc.Service }

// list handles GET /series?limit=
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	limit, err := httpkit.QueryInt(r, "limit", domain.DefaultLimit, 1, domain.MaxLimit)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), limit)
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.URLParam(r, "external_id"))
}
