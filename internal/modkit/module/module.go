// Package module holds the module contract and the bootstrap port registry.
// It sits below modkit so a service can export its port types without an import cycle
package module

import (
	phttp "pbl/internal/platform/net/http"
)

// Module mounts routes and exposes a port set for cross module wiring
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
