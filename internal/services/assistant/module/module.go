// Package module wires the assistant into the API using modkit
package module

import (
	"context"
	"time"

	"pbl/internal/core/intent"
	"pbl/internal/modkit"
	"pbl/internal/modkit/httpkit"
	"pbl/internal/modkit/repokit"

	assistanthttp "pbl/internal/services/assistant/http"
	assistantrepo "pbl/internal/services/assistant/repo"
	"pbl/internal/services/assistant/service"
)

// Module is the assistant module
type Module struct {
	modkit.Base
	svc *service.Svc
}

// New constructs the assistant module. Collaborators owned by other modules
// come in through modkit.WithPorts(Inject{...})
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	deps = deps.WithDefaults()
	in, _ := modkit.InjectedPorts[Inject](modkit.Build(opts...))
	cfg := deps.Cfg.Prefix("ASSISTANT_")

	reminders := reminderStore(deps, cfg.MayDuration("STMT_TIMEOUT", 3*time.Second))
	notices := in.Notices
	if notices == nil {
		notices = noNotices{}
	}

	gen := service.NewGenerator(notices, reminders,
		service.WithClock(deps.Clock),
		service.WithLocation(cfg.MayLocation("TZ", time.Local)),
	)
	d := service.NewDispatcher(intent.MustDefault(), gen, in.Recorder)
	svc := service.New(d, reminders)

	m := &Module{svc: svc}
	m.Base = modkit.NewBase("assistant", "/assistant", func(r httpkit.Router) {
		assistanthttp.Register(r, m.svc)
	}, opts...)
	m.SetPorts(Ports{Service: svc, Dispatcher: d})
	return m
}

// Service returns the assistant service, for the CLI
func (m *Module) Service() *service.Svc { return m.svc }

// reminderStore picks postgres when it is wired and the in-process list
// otherwise
func reminderStore(deps modkit.Deps, stmtTimeout time.Duration) assistantrepo.Repo {
	if !deps.HasPG() {
		deps.Log.Info().Str("module", "assistant").Msg("postgres disabled; reminders kept in memory")
		return assistantrepo.NewMemory(deps.Clock)
	}
	if deps.Migrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := assistantrepo.Migrate(ctx, deps.PG); err != nil {
			deps.Log.Panic().Err(err).Msg("reminders schema")
		}
	}
	db := repokit.WithBeginHooks(deps.PG, repokit.StatementTimeout(stmtTimeout))
	return assistantrepo.NewTxStore(db, assistantrepo.NewPG())
}
