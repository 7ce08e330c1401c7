package pg

import (
	"context"
	"strings"

	"pbl/internal/platform/logger"
	pstrings "pbl/internal/platform/strings"

	"github.com/rs/zerolog"
)

// maxSQL bounds the statement text written to the log
const maxSQL = 512

// QueryEvent is one traced statement
type QueryEvent struct {
	SQL       string
	Args      []any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives an event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// TracerFunc adapts a func to QueryTracer
type TracerFunc func(ctx context.Context, ev QueryEvent)

// OnQuery implements QueryTracer
func (f TracerFunc) OnQuery(ctx context.Context, ev QueryEvent) { f(ctx, ev) }

// Tracer logs every statement through root. The tracer pins its own level to
// debug so PG_LOG_SQL works regardless of LOG_LEVEL. Args are logged only when
// withArgs is set since reminder tasks are user text
func Tracer(root logger.Logger, withArgs bool) QueryTracer {
	l := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return &zlTracer{log: l, withArgs: withArgs}
}

type zlTracer struct {
	log      logger.Logger
	withArgs bool
}

func (z *zlTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	evt := z.log.Debug()
	switch {
	case ev.Err != nil:
		evt = z.log.Error()
	case ev.Slow:
		evt = z.log.Warn()
	}

	if id := logger.RequestID(ctx); id != "" {
		evt = evt.Str("request_id", id)
	}
	evt = evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", pstrings.Clip(compact(ev.SQL), maxSQL)).
		Int("nargs", len(ev.Args))
	if z.withArgs {
		evt = evt.Interface("args", ev.Args)
	}
	evt.Err(ev.Err).Msg("pg query")
}

// compact folds whitespace runs to a single space and trims the ends
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
