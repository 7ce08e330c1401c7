package service

import (
	"context"
	"sync"
	"testing"
	"time"

	perr "pbl/internal/platform/errors"
	"pbl/internal/platform/metrics"
	"pbl/internal/platform/testkit"
	"pbl/internal/services/telemetry/domain"
	"pbl/internal/services/telemetry/repo"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type batches struct {
	mu  sync.Mutex
	got [][]domain.Event
}

func (b *batches) WriteBatch(_ context.Context, evs []domain.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.got = append(b.got, append([]domain.Event(nil), evs...))
	return nil
}

func (b *batches) sizes() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]int, len(b.got))
	for i, g := range b.got {
		out[i] = len(g)
	}
	return out
}

func TestRecorder_FlushesOnBatchSizeAndClose(t *testing.T) {
	sink := &batches{}
	r := New(sink, nil, Config{Batch: 2, FlushEvery: time.Hour})
	r.Start(context.Background())

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Record(context.Background(), domain.Event{Intent: "help"}))
	}
	testkit.Eventually(t, time.Second, func() bool { return len(sink.sizes()) == 2 }, "two full batches")
	require.NoError(t, r.Close(context.Background()))
	assert.Equal(t, []int{2, 2, 1}, sink.sizes())

	err := r.Record(context.Background(), domain.Event{})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeUnavailable))
	require.NoError(t, r.Close(context.Background()))
}

func TestRecorder_FlushesOnTicker(t *testing.T) {
	sink := &batches{}
	r := New(sink, nil, Config{Batch: 100, FlushEvery: 10 * time.Millisecond})
	r.Start(context.Background())
	defer r.Close(context.Background())

	require.NoError(t, r.Record(context.Background(), domain.Event{Intent: "notice"}))
	testkit.Eventually(t, time.Second, func() bool { return len(sink.sizes()) == 1 }, "ticker flush")
}

func TestRecorder_DropsWhenFull(t *testing.T) {
	r := New(&batches{}, nil, Config{Batch: 1, Buffer: 2})
	for i := 0; i < 5; i++ {
		require.NoError(t, r.Record(context.Background(), domain.Event{}))
	}
	assert.EqualValues(t, 3, r.Dropped())
	require.NoError(t, r.Close(context.Background()))
}

func TestRecorder_ObservesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.MustNew(reg)
	r := New(&batches{}, m, Config{})
	require.NoError(t, r.Record(context.Background(), domain.Event{Intent: "help", Channel: "voice", Latency: time.Millisecond}))
	require.NoError(t, r.Record(context.Background(), domain.Event{Intent: "help", Channel: "voice", Failed: true}))

	n, err := testutil.GatherAndCount(reg, "pbl_assistant_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecorder_Summary(t *testing.T) {
	mem := repo.NewMemory(0)
	r := New(mem, nil, Config{Batch: 1, Source: "memory"})
	r.Start(context.Background())
	at := time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC)
	require.NoError(t, r.Record(context.Background(), domain.Event{At: at, Intent: "greeting"}))
	testkit.Eventually(t, time.Second, func() bool { return mem.Len() == 1 }, "event stored")

	s, err := r.Summary(context.Background(), at.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "memory", s.Source)
	require.Len(t, s.Intents, 1)
	require.NoError(t, r.Close(context.Background()))

	w := New(&batches{}, nil, Config{})
	_, err = w.Summary(context.Background(), at)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeUnavailable))
}
