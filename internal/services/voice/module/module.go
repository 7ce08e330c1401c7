// Package module mounts the voice bridge websocket
package module

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"pbl/internal/modkit"
	"pbl/internal/modkit/httpkit"
	"pbl/internal/platform/logger"
	"pbl/internal/platform/metrics"
	adomain "pbl/internal/services/assistant/domain"
	"pbl/internal/services/voice/bridge"
	"pbl/internal/services/voice/session"

	"github.com/gorilla/websocket"
)

// Inject carries the dispatcher the bridge feeds
type Inject struct {
	Dispatcher session.Dispatcher
}

// Module is the voice module
type Module struct {
	modkit.Base
	d        session.Dispatcher
	cfg      bridge.Config
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader

	// base outlives requests; cancelling it ends every open bridge
	base   context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
	conns  sync.WaitGroup
}

// New constructs the voice module. It panics without an injected dispatcher
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	deps = deps.WithDefaults()
	in, _ := modkit.InjectedPorts[Inject](modkit.Build(opts...))
	if in.Dispatcher == nil {
		panic("voice module requires modkit.WithPorts(Inject{Dispatcher: ...})")
	}
	cfg := deps.Cfg.Prefix("VOICE_")

	m := &Module{
		d:       in.Dispatcher,
		metrics: deps.Metrics,
		cfg: bridge.Config{
			HelloTimeout: cfg.MayDuration("HELLO_TIMEOUT", 10*time.Second),
			PongWait:     cfg.MayDuration("PONG_WAIT", 60*time.Second),
			Voice: session.Voice{
				Lang:   cfg.MayString("LANG", session.DefaultVoice.Lang),
				Rate:   cfg.MayFloat64("RATE", session.DefaultVoice.Rate),
				Pitch:  cfg.MayFloat64("PITCH", session.DefaultVoice.Pitch),
				Volume: cfg.MayFloat64("VOLUME", session.DefaultVoice.Volume),
			},
		},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(cfg.MayCSV("ORIGINS", nil)),
		},
	}
	m.base, m.cancel = context.WithCancel(context.Background())
	m.Base = modkit.NewBase("voice", "/voice", func(r httpkit.Router) {
		r.Get("/ws", m.serveWS)
	}, opts...)
	return m
}

// checkOrigin allows the listed origins, any origin for "*", and same host
// requests when the list is empty
func checkOrigin(allowed []string) func(*http.Request) bool {
	if slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if len(allowed) > 0 {
			return slices.ContainsFunc(allowed, func(a string) bool { return strings.EqualFold(a, origin) })
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

// @Summary Voice bridge websocket
// @Description JSON text frames. Client: hello, toggle, stop, say, quick, read_notices, result, error, end, speech_error. Server: welcome, listen, speak, speak_cancel, message.
// @Tags Voice
// @Success 101 "switching protocols"
// @Router /voice/ws [get]
func (m *Module) serveWS(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		http.Error(w, "voice bridge is shutting down", http.StatusServiceUnavailable)
		return
	}
	m.conns.Add(1)
	m.mu.Unlock()
	defer m.conns.Done()

	ws, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	user := adomain.UserFrom(httpkit.Identity(r))

	// hijacked connections are invisible to http.Server.Shutdown
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()
	unhook := context.AfterFunc(m.base, cancel)
	defer unhook()

	if err := bridge.Serve(ctx, ws, m.d, user, m.metrics, m.cfg); err != nil {
		logger.C(ctx).Debug().Err(err).Msg("voice bridge ended")
	}
}

// Stop refuses new bridges and tells open ones to end. It does not wait
func (m *Module) Stop() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.cancel()
}

// Shutdown stops the module and waits for open bridges to finish their
// in-flight commands, or for ctx to end
func (m *Module) Shutdown(ctx context.Context) error {
	m.Stop()
	done := make(chan struct{})
	go func() {
		m.conns.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
