// Package module wires the notice board into the API using modkit
package module

import (
	"context"
	"time"

	"pbl/internal/modkit"
	"pbl/internal/modkit/httpkit"
	"pbl/internal/modkit/repokit"

	noticeshttp "pbl/internal/services/notices/http"
	noticesrepo "pbl/internal/services/notices/repo"
	"pbl/internal/services/notices/service"
)

// Module is the notices module
type Module struct {
	modkit.Base
	svc *service.Svc
}

// Ports is what the notice board exposes to other modules
type Ports struct {
	Service *service.Svc
}

// New constructs the notices module. Postgres backs it when wired, otherwise
// notices live in process
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	deps = deps.WithDefaults()
	cfg := deps.Cfg.Prefix("ASSISTANT_")
	r := noticeStore(deps, cfg.MayDuration("STMT_TIMEOUT", 3*time.Second))

	if cfg.MayBool("SEED_NOTICES", true) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		n, err := noticesrepo.Seed(ctx, r)
		cancel()
		if err != nil {
			deps.Log.Warn().Err(err).Msg("seed notices")
		} else if n > 0 {
			deps.Log.Info().Int("count", n).Msg("seeded sample notices")
		}
	}

	svc := service.New(r)
	m := &Module{svc: svc}
	m.Base = modkit.NewBase("notices", "/notices", func(rt httpkit.Router) {
		noticeshttp.Register(rt, m.svc)
	}, opts...)
	m.SetPorts(Ports{Service: svc})
	return m
}

// Service returns the notice service
func (m *Module) Service() *service.Svc { return m.svc }

func noticeStore(deps modkit.Deps, stmtTimeout time.Duration) noticesrepo.Repo {
	if !deps.HasPG() {
		deps.Log.Info().Str("module", "notices").Msg("postgres disabled; notices kept in memory")
		return noticesrepo.NewMemory(deps.Clock)
	}
	if deps.Migrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := noticesrepo.Migrate(ctx, deps.PG); err != nil {
			deps.Log.Panic().Err(err).Msg("notices schema")
		}
	}
	db := repokit.WithBeginHooks(deps.PG, repokit.StatementTimeout(stmtTimeout))
	return noticesrepo.NewTxStore(db, noticesrepo.NewPG())
}
