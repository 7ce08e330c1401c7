package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"time"

	"github.com/joho/godotenv"

	"pbl/internal/modkit"
	"pbl/internal/platform/config"
	"pbl/internal/platform/logger"
	"pbl/internal/platform/metrics"
	pnet "pbl/internal/platform/net"
	"pbl/internal/platform/store"

	"pbl/internal/services/api"
	adomain "pbl/internal/services/assistant/domain"
	assistantmod "pbl/internal/services/assistant/module"
	noticesmod "pbl/internal/services/notices/module"
	telemetrymod "pbl/internal/services/telemetry/module"
)

// app holds the flags shared by every command and the services built from
// them on first use
type app struct {
	envFile string
	who     pnet.Identity
	pretty  bool

	in  io.Reader
	out io.Writer

	root      config.Conf
	st        *store.Store
	notices   *noticesmod.Module
	assistant *assistantmod.Module
	telemetry *telemetrymod.Module
}

func (a *app) boot(ctx context.Context) error {
	if a.assistant != nil {
		return nil
	}
	if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	a.root = config.New()
	l := logger.Get()

	st, err := store.Open(ctx, store.FromConf(a.root, "ctl"), store.WithLogger(*l))
	if err != nil {
		return err
	}
	a.st = st

	deps := modkit.Deps{
		Log:     l,
		Cfg:     a.root,
		PG:      st.PG,
		CH:      st.CH,
		Metrics: metrics.Default(),
		Migrate: st.Config().PG.Migrate,
	}
	a.notices = noticesmod.New(deps)
	a.telemetry = telemetrymod.New(deps)
	a.assistant = assistantmod.New(deps, modkit.WithPorts(assistantmod.Inject{
		Notices:  api.NoticeLister(a.notices.Service()),
		Recorder: api.EventRecorder(a.telemetry.Recorder()),
	}))
	return nil
}

func (a *app) close() error {
	var errs []error
	if a.telemetry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, a.telemetry.Close(ctx))
		cancel()
	}
	errs = append(errs, a.st.Close(context.Background()))
	return errors.Join(errs...)
}

func (a *app) user() *adomain.User { return adomain.UserFrom(a.who) }

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	if a.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
