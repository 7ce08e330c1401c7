// Package service records dispatched commands: counters go to Prometheus
// at once, events are batched into the configured sink
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	perr "pbl/internal/platform/errors"
	"pbl/internal/platform/logger"
	"pbl/internal/platform/metrics"
	"pbl/internal/services/telemetry/domain"
)

// Config tunes batching
type Config struct {
	Batch      int           // flush when this many events are pending
	FlushEvery time.Duration // flush at least this often
	Buffer     int           // queued events beyond which Record drops
	Source     string        // reported in summaries
}

func (c Config) withDefaults() Config {
	if c.Batch <= 0 {
		c.Batch = 100
	}
	if c.FlushEvery <= 0 {
		c.FlushEvery = 2 * time.Second
	}
	if c.Buffer <= 0 {
		c.Buffer = 4 * c.Batch
	}
	if c.Source == "" {
		c.Source = "memory"
	}
	return c
}

// Recorder queues events for the sink. Record never blocks on storage
type Recorder struct {
	sink    domain.Sink
	metrics *metrics.Metrics
	cfg     Config
	log     *logger.Logger

	mu      sync.RWMutex
	closed  bool
	in      chan domain.Event
	done    chan struct{}
	started atomic.Bool
	dropped atomic.Int64
}

// New returns a recorder over sink. m may be nil
func New(sink domain.Sink, m *metrics.Metrics, cfg Config) *Recorder {
	if sink == nil {
		panic("telemetry.New requires a sink")
	}
	cfg = cfg.withDefaults()
	return &Recorder{
		sink:    sink,
		metrics: m,
		cfg:     cfg,
		log:     logger.Named("telemetry"),
		in:      make(chan domain.Event, cfg.Buffer),
		done:    make(chan struct{}),
	}
}

// Start runs the flush loop until Close. Calling it twice is a no-op
func (r *Recorder) Start(ctx context.Context) {
	if !r.started.CompareAndSwap(false, true) {
		return
	}
	go r.loop(context.WithoutCancel(ctx))
}

// Record counts ev and queues it for the sink. A full queue drops the event
func (r *Recorder) Record(_ context.Context, ev domain.Event) error {
	r.metrics.ObserveCommand(ev.Intent, ev.Channel, ev.Failed, ev.Latency)

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return perr.Unavailablef("telemetry recorder closed")
	}
	select {
	case r.in <- ev:
	default:
		if n := r.dropped.Add(1); n == 1 || n%1000 == 0 {
			r.log.Warn().Int64("dropped", n).Msg("telemetry queue full; dropping events")
		}
	}
	return nil
}

// Dropped reports how many events were discarded on a full queue
func (r *Recorder) Dropped() int64 { return r.dropped.Load() }

func (r *Recorder) loop(ctx context.Context) {
	defer close(r.done)
	t := time.NewTicker(r.cfg.FlushEvery)
	defer t.Stop()

	pending := make([]domain.Event, 0, r.cfg.Batch)
	flush := func() {
		if len(pending) == 0 {
			return
		}
		if err := r.sink.WriteBatch(ctx, pending); err != nil {
			r.log.Error().Err(err).Int("events", len(pending)).Msg("telemetry write failed")
		}
		pending = pending[:0]
	}

	for {
		select {
		case ev, ok := <-r.in:
			if !ok {
				flush()
				return
			}
			pending = append(pending, ev)
			if len(pending) >= r.cfg.Batch {
				flush()
			}
		case <-t.C:
			flush()
		}
	}
}

// Close stops accepting events and waits for the queue to drain into the
// sink, or for ctx
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.in)
	r.mu.Unlock()

	if !r.started.Load() {
		return nil
	}
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Summary aggregates stored events since the given time, when the sink can
// be read back
func (r *Recorder) Summary(ctx context.Context, since time.Time) (domain.Summary, error) {
	rd, ok := r.sink.(domain.Reader)
	if !ok {
		return domain.Summary{}, perr.Unavailablef("telemetry sink is write only")
	}
	stats, err := rd.Summary(ctx, since)
	if err != nil {
		return domain.Summary{}, perr.ExternalStoref(err, "summarise events")
	}
	return domain.Summary{Since: since.UTC(), Source: r.cfg.Source, Intents: stats}, nil
}
