// Package modkit wires service modules: shared deps, build options and the
// embeddable Base that mounts a module under its prefix
package modkit

import (
	"pbl/internal/modkit/repokit"
	"pbl/internal/platform/config"
	"pbl/internal/platform/logger"
	"pbl/internal/platform/metrics"
	"pbl/internal/platform/store"
	ptime "pbl/internal/platform/time"
)

// Deps holds the core dependencies handed to every module.
// PG and CH are nil when the backend is disabled
type Deps struct {
	Log     *logger.Logger
	Cfg     config.Conf
	PG      repokit.TxRunner
	CH      store.Clickhouse
	Metrics *metrics.Metrics
	Clock   ptime.Clock

	// Migrate lets repos create their tables at boot
	Migrate bool
}

// WithDefaults fills the zero fields that have a safe default
func (d Deps) WithDefaults() Deps {
	if d.Log == nil {
		d.Log = logger.Get()
	}
	if d.Clock == nil {
		d.Clock = ptime.System
	}
	return d
}

// HasPG reports whether a postgres seam is wired
func (d Deps) HasPG() bool { return d.PG != nil }

// HasCH reports whether a clickhouse seam is wired
func (d Deps) HasCH() bool { return d.CH != nil }
