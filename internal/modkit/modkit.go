// Package modkit provides module wiring and core deps
package modkit

import (
	"tsdash/internal/modkit/module"
)

// Module is what every API module hands to the api mount
// it lives in the module package so port lookups can import it without a cycle
type Module = module.Module

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
