package repo

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"pbl/internal/services/telemetry/domain"
)

// DefaultWindow caps how many events Memory keeps
const DefaultWindow = 10000

// Memory keeps the most recent events in process
type Memory struct {
	mu  sync.Mutex
	evs []domain.Event
	max int
}

// NewMemory keeps up to max events, DefaultWindow when max <= 0
func NewMemory(max int) *Memory {
	if max <= 0 {
		max = DefaultWindow
	}
	return &Memory{max: max}
}

// WriteBatch implements domain.Sink, dropping the oldest events past the window
func (m *Memory) WriteBatch(_ context.Context, evs []domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evs = append(m.evs, evs...)
	if over := len(m.evs) - m.max; over > 0 {
		m.evs = slices.Delete(m.evs, 0, over)
	}
	return nil
}

// Summary implements domain.Reader
func (m *Memory) Summary(_ context.Context, since time.Time) ([]domain.IntentStat, error) {
	type acc struct {
		n, failed uint64
		total     time.Duration
	}
	m.mu.Lock()
	by := map[string]*acc{}
	for _, ev := range m.evs {
		if ev.At.Before(since) {
			continue
		}
		a := by[ev.Intent]
		if a == nil {
			a = &acc{}
			by[ev.Intent] = a
		}
		a.n++
		a.total += ev.Latency
		if ev.Failed {
			a.failed++
		}
	}
	m.mu.Unlock()

	out := make([]domain.IntentStat, 0, len(by))
	for in, a := range by {
		out = append(out, domain.IntentStat{
			Intent:    in,
			Count:     a.n,
			Failed:    a.failed,
			AvgMillis: float64(a.total) / float64(time.Millisecond) / float64(a.n),
		})
	}
	slices.SortFunc(out, func(x, y domain.IntentStat) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return cmp.Compare(x.Intent, y.Intent)
	})
	return out, nil
}

// Len reports how many events are held
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.evs)
}
