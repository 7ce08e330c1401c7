// Package api provides the HTTP API for the application
package api

import (
	"context"
	"errors"
	"time"

	"pbl/internal/adapters/feed"
	"pbl/internal/core/version"
	"pbl/internal/platform/config"
	"pbl/internal/platform/logger"
	"pbl/internal/platform/metrics"
	phttp "pbl/internal/platform/net/http"
	"pbl/internal/platform/store"

	"pbl/internal/modkit"
	"pbl/internal/modkit/httpkit"
	"pbl/internal/modkit/module"
	"pbl/internal/modkit/swaggerkit"

	metamod "pbl/internal/services/api/meta/module"
	adomain "pbl/internal/services/assistant/domain"
	assistantmod "pbl/internal/services/assistant/module"
	directorymod "pbl/internal/services/directory/module"
	ndomain "pbl/internal/services/notices/domain"
	noticesmod "pbl/internal/services/notices/module"
	tdomain "pbl/internal/services/telemetry/domain"
	telemetrymod "pbl/internal/services/telemetry/module"
	voicemod "pbl/internal/services/voice/module"

	"github.com/prometheus/client_golang/prometheus"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// Metrics and Gatherer default to the process registry
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// App is the mounted API. Close ends voice bridges, stops the feed importer
// and flushes telemetry
type App struct {
	Assistant *assistantmod.Module
	Notices   *noticesmod.Module
	Voice     *voicemod.Module
	Telemetry *telemetrymod.Module
	Importer  *feed.Importer

	stopFeed context.CancelFunc
	feedDone chan struct{}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) (*App, error) {
	if opt.Metrics == nil {
		opt.Metrics = metrics.Default()
	}
	if opt.Gatherer == nil {
		opt.Gatherer = prometheus.DefaultGatherer
	}

	// shared deps for modules
	deps := modkit.Deps{
		Log:     opt.Logger,
		Cfg:     opt.Config,
		Metrics: opt.Metrics,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
		deps.Migrate = opt.Store.Config().PG.Migrate
	}
	deps = deps.WithDefaults()

	notices := noticesmod.New(deps)
	telemetry := telemetrymod.New(deps)

	// the assistant borrows the notice board and the recorder
	assistant := assistantmod.New(deps, modkit.WithPorts(assistantmod.Inject{
		Notices:  NoticeLister(notices.Service()),
		Recorder: EventRecorder(telemetry.Recorder()),
	}))
	voice := voicemod.New(deps, modkit.WithPorts(voicemod.Inject{
		Dispatcher: module.MustPortsOf[assistantmod.Ports](assistant).Dispatcher,
	}))

	mods := []module.Module{
		metamod.New(deps),
		directorymod.New(deps),
		notices,
		assistant,
		voice,
		telemetry,
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.Config.MayCSV("API_CORS_ORIGINS", nil),
		SlowRequest: opt.Config.MayDuration("API_SLOW_REQUEST", time.Second),
		Metrics:     opt.Metrics,
	})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	// Swagger, profiler and the scrape endpoint sit outside /api/v1
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	r.Handle("/metrics", metrics.Handler(opt.Gatherer))

	app := &App{Assistant: assistant, Notices: notices, Voice: voice, Telemetry: telemetry}
	im, err := Importer(opt.Config, notices.Service(), opt.Metrics)
	if err != nil {
		voice.Stop()
		_ = telemetry.Close(context.Background())
		return nil, err
	}
	if im != nil {
		app.Importer = im
		app.startFeed(opt.Config.MayDuration("FEED_INTERVAL", 15*time.Minute))
	}

	deps.Log.Info().
		Str("service", version.Service).
		Strs("modules", module.Names()).
		Bool("pg", deps.HasPG()).
		Bool("ch", deps.HasCH()).
		Int("feeds", len(app.feedSources())).
		Msg("api mounted")
	return app, nil
}

// Importer builds the feed importer from FEED_URLS, or nil when no feed is
// configured
func Importer(c config.Conf, sink feed.Sink, m *metrics.Metrics) (*feed.Importer, error) {
	sources, err := feed.ParseSources(c.MayPairs("FEED_URLS"))
	if err != nil || len(sources) == 0 {
		return nil, err
	}
	client := feed.NewClient(nil, feed.Options{
		UserAgent:  version.Service + "/" + version.Info().Version,
		Timeout:    c.MayDuration("FEED_TIMEOUT", 10*time.Second),
		MaxRetries: c.MayInt("FEED_RETRIES", 3),
	})
	return feed.NewImporter(client, sink, sources, m, nil), nil
}

func (a *App) startFeed(every time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopFeed = cancel
	a.feedDone = make(chan struct{})
	go func() {
		defer close(a.feedDone)
		if err := a.Importer.Run(ctx, every); err != nil && !errors.Is(err, context.Canceled) {
			logger.Named("feed").Error().Err(err).Msg("feed importer stopped")
		}
	}()
}

func (a *App) feedSources() []feed.Source {
	if a.Importer == nil {
		return nil
	}
	return a.Importer.Sources()
}

// Close stops background work and flushes queued telemetry. Voice commands
// still in flight are recorded before the flush
func (a *App) Close(ctx context.Context) error {
	if err := a.Voice.Shutdown(ctx); err != nil {
		logger.Named("voice").Warn().Err(err).Msg("voice bridges still open at close")
	}
	if a.stopFeed != nil {
		a.stopFeed()
		select {
		case <-a.feedDone:
		case <-ctx.Done():
		}
	}
	return a.Telemetry.Close(ctx)
}

// NoticeLister narrows the notice board to what reply generation reads
func NoticeLister(src interface {
	ListNotices(context.Context) ([]ndomain.Notice, error)
}) adomain.NoticeLister {
	return assistantmod.NoticesFunc(func(ctx context.Context) ([]adomain.Notice, error) {
		items, err := src.ListNotices(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]adomain.Notice, 0, len(items))
		for _, n := range items {
			out = append(out, adomain.Notice{
				Title:      n.Title,
				Department: n.Department,
				Priority:   n.Priority,
				CreatedAt:  n.CreatedAt,
			})
		}
		return out, nil
	})
}

// EventRecorder forwards dispatcher events to a telemetry sink
func EventRecorder(rec interface {
	Record(context.Context, tdomain.Event) error
}) adomain.Recorder {
	return adomain.RecorderFunc(func(ctx context.Context, ev adomain.Event) error {
		return rec.Record(ctx, tdomain.Event{
			At:         ev.At,
			Intent:     string(ev.Intent),
			Department: ev.Department,
			Channel:    ev.Channel,
			Latency:    ev.Latency,
			Failed:     ev.Failed,
		})
	})
}
