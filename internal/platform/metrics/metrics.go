// Package metrics holds the Prometheus collectors shared by the HTTP stack,
// the assistant and the feed importer
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pbl"

// Metrics is a set of registered collectors. A nil *Metrics records nothing
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	commands       *prometheus.CounterVec
	commandLatency *prometheus.HistogramVec

	voiceSessions prometheus.Gauge
	voiceFrames   *prometheus.CounterVec

	feedItems  *prometheus.CounterVec
	feedErrors *prometheus.CounterVec
}

var (
	defaultOnce sync.Once
	shared      *Metrics
)

// Default returns the process metrics registered on the default registerer
func Default() *Metrics {
	defaultOnce.Do(func() { shared = MustNew(prometheus.DefaultRegisterer) })
	return shared
}

// MustNew builds and registers the collectors on reg. Collectors that are
// already registered are reused; any other registration error panics
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assistant",
			Name:      "commands_total",
			Help:      "Dispatched commands by intent, channel and outcome.",
		}, []string{"intent", "channel", "outcome"}),
		commandLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "assistant",
			Name:      "command_duration_seconds",
			Help:      "Time from command text to reply text.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 2.5},
		}, []string{"intent"}),
		voiceSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "voice",
			Name:      "sessions_active",
			Help:      "Open voice bridge connections.",
		}),
		voiceFrames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "voice",
			Name:      "frames_total",
			Help:      "Voice bridge frames by direction and type.",
		}, []string{"direction", "type"}),
		feedItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "items_imported_total",
			Help:      "Feed items imported as notices, by department.",
		}, []string{"department"}),
		feedErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "fetch_errors_total",
			Help:      "Failed feed fetches, by department.",
		}, []string{"department"}),
	}

	m.httpRequests = register(reg, m.httpRequests)
	m.httpDuration = register(reg, m.httpDuration)
	m.commands = register(reg, m.commands)
	m.commandLatency = register(reg, m.commandLatency)
	m.voiceSessions = register(reg, m.voiceSessions)
	m.voiceFrames = register(reg, m.voiceFrames)
	m.feedItems = register(reg, m.feedItems)
	m.feedErrors = register(reg, m.feedErrors)
	return m
}

// NewRegistry returns a registry carrying the Go and process collectors,
// for binaries that do not want the global default
func NewRegistry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// Handler serves the exposition format for g
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// ObserveHTTP records one finished request. route is the router pattern,
// never the raw path
func (m *Metrics) ObserveHTTP(method, route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveCommand records one dispatched command
func (m *Metrics) ObserveCommand(intent, channel string, failed bool, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if failed {
		outcome = "error"
	}
	m.commands.WithLabelValues(intent, channel, outcome).Inc()
	m.commandLatency.WithLabelValues(intent).Observe(d.Seconds())
}

// VoiceSessionOpened and VoiceSessionClosed track live bridge connections
func (m *Metrics) VoiceSessionOpened() {
	if m != nil {
		m.voiceSessions.Inc()
	}
}

func (m *Metrics) VoiceSessionClosed() {
	if m != nil {
		m.voiceSessions.Dec()
	}
}

// VoiceFrame counts one bridge frame; direction is "in" or "out"
func (m *Metrics) VoiceFrame(direction, typ string) {
	if m != nil {
		m.voiceFrames.WithLabelValues(direction, typ).Inc()
	}
}

// FeedImported adds n imported items for dept
func (m *Metrics) FeedImported(dept string, n int) {
	if m != nil && n > 0 {
		m.feedItems.WithLabelValues(dept).Add(float64(n))
	}
}

// FeedFailed counts a failed fetch for dept
func (m *Metrics) FeedFailed(dept string) {
	if m != nil {
		m.feedErrors.WithLabelValues(dept).Inc()
	}
}
