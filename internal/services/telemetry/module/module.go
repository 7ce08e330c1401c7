// Package module wires command telemetry: Prometheus counters plus an event
// store in ClickHouse, or in process when ClickHouse is disabled
package module

import (
	"context"
	"time"

	"pbl/internal/modkit"
	"pbl/internal/modkit/httpkit"

	"pbl/internal/services/telemetry/domain"
	telemetryhttp "pbl/internal/services/telemetry/http"
	telemetryrepo "pbl/internal/services/telemetry/repo"
	"pbl/internal/services/telemetry/service"
)

// Module is the telemetry module
type Module struct {
	modkit.Base
	rec *service.Recorder
}

// Ports is what telemetry exposes to other modules
type Ports struct {
	Recorder *service.Recorder
}

// New constructs the telemetry module and starts its flush loop
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	deps = deps.WithDefaults()
	cfg := deps.Cfg.Prefix("TELEMETRY_")

	sink, source := eventStore(deps)
	rec := service.New(sink, deps.Metrics, service.Config{
		Batch:      cfg.MayInt("BATCH", 100),
		FlushEvery: cfg.MayDuration("FLUSH_EVERY", 2*time.Second),
		Buffer:     cfg.MayInt("BUFFER", 1000),
		Source:     source,
	})
	rec.Start(context.Background())

	m := &Module{rec: rec}
	m.Base = modkit.NewBase("telemetry", "/telemetry", func(r httpkit.Router) {
		telemetryhttp.Register(r, m.rec, deps.Clock)
	}, opts...)
	m.SetPorts(Ports{Recorder: rec})
	return m
}

// Recorder returns the command recorder
func (m *Module) Recorder() *service.Recorder { return m.rec }

// Close drains queued events into the store
func (m *Module) Close(ctx context.Context) error { return m.rec.Close(ctx) }

func eventStore(deps modkit.Deps) (domain.Store, string) {
	if !deps.HasCH() {
		deps.Log.Info().Str("module", "telemetry").Msg("clickhouse disabled; events kept in memory")
		return telemetryrepo.NewMemory(deps.Cfg.Prefix("TELEMETRY_").MayInt("WINDOW", telemetryrepo.DefaultWindow)), "memory"
	}
	r := telemetryrepo.NewCH(deps.CH, deps.Cfg.Prefix("CH_").MayString("TABLE", telemetryrepo.DefaultTable))
	if deps.Migrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := r.Migrate(ctx); err != nil {
			deps.Log.Panic().Err(err).Str("table", r.Table()).Msg("events schema")
		}
	}
	return r, "clickhouse"
}
