// Package module serves the static department directory
package module

import (
	stdhttp "net/http"

	"pbl/internal/core/department"
	"pbl/internal/modkit"
	"pbl/internal/modkit/httpkit"
	perr "pbl/internal/platform/errors"
)

// Module is the department directory module
type Module struct{ modkit.Base }

// New constructs the directory module
func New(_ modkit.Deps, opts ...modkit.Option) *Module {
	m := &Module{}
	m.Base = modkit.NewBase("directory", "/departments", func(r httpkit.Router) {
		httpkit.Get(r, "/", list)
		httpkit.Get(r, "/{code}", one)
	}, opts...)
	return m
}

// @Summary Department directory with accent colors
// @Tags Departments
// @Produce json
// @Success 200 {array} department.Entry "ok"
// @Router /departments [get]
func list(*stdhttp.Request) (any, error) { return department.Entries(), nil }

func one(r *stdhttp.Request) (any, error) {
	code, ok := department.Canonical(httpkit.Param(r, "code"))
	if !ok {
		return nil, perr.WithField(perr.NotFoundf("unknown department"), "code")
	}
	desc, _ := department.Describe(code)
	return department.Entry{Code: code, Description: desc, Color: department.Color(code)}, nil
}
