package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"pbl/internal/platform/config"
	"pbl/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server pairs a chi mux with a stdlib http.Server
type Server struct {
	addr  string
	mux   *chi.Mux
	srv   *stdhttp.Server
	drain time.Duration
}

// NewServer reads API_PORT and API_SHUTDOWN_GRACE from cfg. opts get the mux
// before any route is mounted so they can install middleware
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("API_PORT", ":4000")
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr:  addr,
		mux:   m,
		drain: cfg.MayDuration("API_SHUTDOWN_GRACE", 10*time.Second),
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router returns the mountable view of the mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Handler is the root handler, for tests and embedding
func (s *Server) Handler() stdhttp.Handler { return s.mux }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.addr }

// OnShutdown registers fn to run when draining starts. Use it to end
// hijacked connections, which Shutdown neither closes nor waits for
func (s *Server) OnShutdown(fn func()) { s.srv.RegisterOnShutdown(fn) }

// Run serves until ctx is cancelled, then drains in-flight requests.
// Websocket connections are hijacked and not waited for
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("http listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), s.drain)
	defer cancel()
	log.Info().Dur("grace", s.drain).Msg("http draining")
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server; Run returns once it is done
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
