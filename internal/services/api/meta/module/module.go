// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"pbl/internal/core/intent"
	"pbl/internal/modkit"
	"pbl/internal/modkit/httpkit"

	metahttp "pbl/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct{ modkit.Base }

// New constructs a meta module with the provided dependencies and options.
// Backends are pinged through deps; nil ones are reported as skipped
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	deps = deps.WithDefaults()
	started := deps.Clock.Now()

	var pg, ch any
	if deps.HasPG() {
		pg = deps.PG
	}
	if deps.HasCH() {
		ch = deps.CH
	}

	m := &Module{}
	m.Base = modkit.NewBase("meta", "/meta", func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			StartedAt: started,
			Clock:     deps.Clock,
			PG:        pg,
			CH:        ch,
			Rules:     intent.MustDefault(),
		})
	}, opts...)
	return m
}
