package module

import "tsdash/internal/services/api/sessions/domain"

// Ports is what the sessions module publishes in the registry
type Ports struct {
	Sessions domain.Port
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
