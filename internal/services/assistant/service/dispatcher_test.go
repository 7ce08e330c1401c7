package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pbl/internal/core/intent"
	perr "pbl/internal/platform/errors"
	ptime "pbl/internal/platform/time"
	"pbl/internal/services/assistant/domain"
	"pbl/internal/services/assistant/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type events struct {
	got []domain.Event
	err error
}

func (e *events) Record(_ context.Context, ev domain.Event) error {
	e.got = append(e.got, ev)
	return e.err
}

func newDispatcher(t *testing.T, n *notices, rec domain.Recorder) (*Dispatcher, *repo.Memory) {
	t.Helper()
	mem := repo.NewMemory(nil)
	g := newGen(n, mem)
	return NewDispatcher(intent.MustDefault(), g, rec), mem
}

func TestDispatcher_Classification(t *testing.T) {
	d, _ := newDispatcher(t, &notices{}, nil)
	cases := map[string]intent.Intent{
		"HELLO":                         intent.Greeting,
		"hello, what assignment is due": intent.Greeting,
		"what is the time":              intent.TimeQuery,
		"schedule cse lab":              intent.Reminder,
		"xyzzy":                         intent.Unknown,
		"":                              intent.Unknown,
		"this":                          intent.Greeting,
	}
	for text, want := range cases {
		assert.Equal(t, want, d.Classify(text), text)
	}
}

func TestDispatcher_HandleReminder(t *testing.T) {
	rec := &events{}
	d, mem := newDispatcher(t, &notices{}, rec)
	ctx := domain.WithChannel(context.Background(), domain.ChannelVoice)

	r, err := d.Handle(ctx, "Set Reminder for 10am for study session", &domain.User{ID: "u1", Department: "CSE"})
	require.NoError(t, err)
	assert.Equal(t, intent.Reminder, r.Intent)
	assert.Contains(t, r.Text, "\"study session\"")
	assert.Equal(t, 1, mem.Len())

	require.Len(t, rec.got, 1)
	ev := rec.got[0]
	assert.Equal(t, intent.Reminder, ev.Intent)
	assert.Equal(t, "CSE", ev.Department)
	assert.Equal(t, domain.ChannelVoice, ev.Channel)
	assert.False(t, ev.Failed)
}

func TestDispatcher_UnknownFallback(t *testing.T) {
	d, _ := newDispatcher(t, &notices{}, nil)
	r, err := d.Handle(context.Background(), "xyzzy", nil)
	require.NoError(t, err)
	assert.Equal(t, intent.Unknown, r.Intent)
	assert.Equal(t, unknownText, r.Text)
}

func TestDispatcher_StoreFailureIsRecorded(t *testing.T) {
	rec := &events{}
	d, _ := newDispatcher(t, &notices{err: errors.New("down")}, rec)
	r, err := d.Handle(context.Background(), "latest notices", nil)
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeExternalStore))
	assert.Equal(t, intent.Notice, r.Intent)
	require.Len(t, rec.got, 1)
	assert.True(t, rec.got[0].Failed)
	assert.Equal(t, domain.ChannelAPI, rec.got[0].Channel)
}

func TestDispatcher_RecorderErrorDoesNotChangeReply(t *testing.T) {
	d, _ := newDispatcher(t, &notices{}, &events{err: errors.New("ch down")})
	r, err := d.Handle(context.Background(), "help", nil)
	require.NoError(t, err)
	assert.Equal(t, helpText, r.Text)
}

func TestDispatcher_LatencyUsesClock(t *testing.T) {
	var calls int
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := ptime.ClockFunc(func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * 10 * time.Millisecond)
	})
	rec := &events{}
	g := NewGenerator(&notices{}, repo.NewMemory(nil), WithClock(clock))
	d := NewDispatcher(intent.MustDefault(), g, rec)
	_, err := d.Handle(context.Background(), "help", nil)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, rec.got[0].Latency)
}

func TestDispatcher_Quick(t *testing.T) {
	d, mem := newDispatcher(t, &notices{}, nil)
	text, r, err := d.Quick(context.Background(), "reminder", &domain.User{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "set reminder for tomorrow 10am study session", text)
	assert.Equal(t, intent.Reminder, r.Intent)
	assert.Equal(t, 1, mem.Len())

	_, _, err = d.Quick(context.Background(), "dance", nil)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))
}

func TestSvc(t *testing.T) {
	d, mem := newDispatcher(t, &notices{}, nil)
	s := New(d, mem)
	ctx := context.Background()
	u := &domain.User{ID: "u1", DisplayName: "Nadia"}

	res, err := s.Ask(ctx, u, domain.AskInput{Text: "hey"})
	require.NoError(t, err)
	assert.Equal(t, intent.Greeting, res.Intent)
	assert.True(t, strings.HasPrefix(res.Reply, "Hello Nadia!"))

	cl, err := s.Classify(ctx, domain.AskInput{Text: "hello schedule"})
	require.NoError(t, err)
	assert.Equal(t, intent.Greeting, cl.Intent)
	assert.NotEmpty(t, cl.Hits)

	cl, _ = s.Classify(ctx, domain.AskInput{Text: "xyzzy"})
	assert.NotNil(t, cl.Hits)

	q, err := s.Quick(ctx, u, "help")
	require.NoError(t, err)
	assert.Equal(t, "help", q.Command)
	assert.Equal(t, intent.Help, q.Intent)

	_, _ = s.Ask(ctx, u, domain.AskInput{Text: "remind me at 9am about lab"})
	rs, err := s.Reminders(ctx, u)
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "lab", rs[0].Task)

	anon, err := s.Reminders(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, anon)
}
