package modkit

import (
	"net/http"

	"tsdash/internal/modkit/httpkit"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	// Subrouter may wrap the module router, Register attaches extra routes
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build folds opts over the defaults a module passes first
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.subrouter == nil {
		c.subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
}

// Mount routes a module under b.Prefix with its middleware, then calls register
// modules call this from MountRoutes
// an empty or "/" prefix mounts in a group on r itself
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	body := func(rr httpkit.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		rr = b.Subrouter(rr)
		register(rr)
		b.Register(rr)
	}
	if b.Prefix == "" || b.Prefix == "/" {
		r.Group(body)
		return
	}
	r.Route(b.Prefix, body)
}
