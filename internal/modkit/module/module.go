// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "tsdash/internal/platform/net/http"
)

// Module mounts routes and exposes ports for cross wiring
// Ports may be nil for modules that only consume
type Module interface {
	Name() string
	Ports() any
	MountRoutes(r phttp.Router)
}

// Prefixed is implemented by modules that mount under a path
type Prefixed interface {
	Prefix() string
}

// PrefixOf returns the module's mount path, "/" for root and routeless modules
func PrefixOf(m Module) string {
	if p, ok := m.(Prefixed); ok && p.Prefix() != "" {
		return p.Prefix()
	}
	return "/"
}
