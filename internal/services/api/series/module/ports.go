package module

import "tsdash/internal/services/api/series/domain"

// Ports is what the series module publishes in the registry
type Ports struct {
	Retriever domain.Retriever
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
