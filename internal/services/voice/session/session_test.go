package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pbl/internal/core/intent"
	adomain "pbl/internal/services/assistant/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	supported bool
	startErr  error
	starts    int
	stops     int

	// platform callbacks fired from inside Start and Stop
	onStart func()
	onStop  func()
}

func (c *capture) Supported() bool { return c.supported }

func (c *capture) Start(context.Context) error {
	c.starts++
	if c.onStart != nil {
		c.onStart()
	}
	return c.startErr
}

func (c *capture) Stop() error {
	c.stops++
	if c.onStop != nil {
		c.onStop()
	}
	return nil
}

type playback struct {
	mu      sync.Mutex
	spoken  []Utterance
	cancels int
}

func (p *playback) Supported() bool { return true }
func (p *playback) Speak(u Utterance) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.spoken = append(p.spoken, u)
	return nil
}
func (p *playback) Cancel() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancels++
	return nil
}

type msg struct {
	role Role
	text string
}

type sink struct {
	mu   sync.Mutex
	msgs []msg
}

func (s *sink) Emit(role Role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg{role, text})
}

func (s *sink) all() []msg {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]msg(nil), s.msgs...)
}

type dispatcher struct {
	mu      sync.Mutex
	texts   []string
	channel string
	err     error
}

func (d *dispatcher) Handle(ctx context.Context, text string, _ *adomain.User) (adomain.Reply, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texts = append(d.texts, text)
	d.channel = adomain.ChannelFrom(ctx)
	if d.err != nil {
		return adomain.Reply{}, d.err
	}
	return adomain.Reply{Intent: intent.Help, Text: "📚 Reply to:\n" + text}, nil
}

func fixture(c *capture) (*Session, *dispatcher, *playback, *sink) {
	d, p, k := &dispatcher{}, &playback{}, &sink{}
	var cp Capture
	if c != nil {
		cp = c
	}
	return New(d, cp, p, k), d, p, k
}

func TestStartToggleStopsOnce(t *testing.T) {
	c := &capture{supported: true}
	s, _, _, k := fixture(c)

	s.Start(context.Background())
	assert.Equal(t, Listening, s.State())
	s.Start(context.Background())
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, 1, c.starts)
	assert.Equal(t, 1, c.stops)
	assert.Equal(t, []msg{{RoleAssistant, MsgListening}}, k.all())
}

func TestToggleWithSynchronousCallbacks(t *testing.T) {
	c := &capture{supported: true}
	s, _, _, _ := fixture(c)
	c.onStop = s.OnEnd
	c.onStart = func() { _ = s.State() }

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Start(context.Background())
		s.Start(context.Background())
		s.Start(context.Background())
		s.Close()
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("toggle blocked on a callback fired from capture")
	}
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, 2, c.starts)
	assert.Equal(t, 2, c.stops)
}

func TestStartUnsupported(t *testing.T) {
	s, _, _, k := fixture(nil)
	s.Start(context.Background())
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, []msg{{RoleAssistant, MsgUnsupported}}, k.all())

	c := &capture{supported: false}
	s, _, _, k = fixture(c)
	s.Start(context.Background())
	assert.Zero(t, c.starts)
	assert.Equal(t, MsgUnsupported, k.all()[0].text)
}

func TestStartFailure(t *testing.T) {
	c := &capture{supported: true, startErr: errors.New("not-allowed")}
	s, _, _, k := fixture(c)
	s.Start(context.Background())
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, []msg{{RoleAssistant, MsgStartFailed}}, k.all())
}

func TestResultDispatchesAndSpeaks(t *testing.T) {
	c := &capture{supported: true}
	s, d, p, k := fixture(c)

	s.Start(context.Background())
	s.OnResult(context.Background(), "help me")
	s.OnEnd()
	assert.Equal(t, Idle, s.State())
	s.Wait()

	got := k.all()
	require.Len(t, got, 3)
	assert.Equal(t, msg{RoleUser, "help me"}, got[1])
	assert.Equal(t, msg{RoleAssistant, "📚 Reply to:\nhelp me"}, got[2])
	assert.Equal(t, adomain.ChannelVoice, d.channel)

	require.Len(t, p.spoken, 1)
	assert.Equal(t, Utterance{Text: " Reply to:. help me", Lang: "en-US", Rate: 0.9, Pitch: 1, Volume: 0.8}, p.spoken[0])
	assert.Equal(t, 1, p.cancels)
}

func TestResultWhileIdleDropped(t *testing.T) {
	s, d, _, k := fixture(&capture{supported: true})
	s.OnResult(context.Background(), "hello")
	s.Wait()
	assert.Empty(t, d.texts)
	assert.Empty(t, k.all())
}

func TestRecognitionError(t *testing.T) {
	s, _, _, k := fixture(&capture{supported: true})
	s.Start(context.Background())
	s.OnError("network")
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, MsgRecognition, k.all()[1].text)
}

func TestDispatchFailureIsGeneric(t *testing.T) {
	s, d, p, k := fixture(nil)
	d.err = errors.New("store down")
	s.Submit(context.Background(), "show notices")
	s.Wait()
	assert.Equal(t, []msg{{RoleUser, "show notices"}, {RoleAssistant, MsgDispatchFail}}, k.all())
	assert.Empty(t, p.spoken)
}

func TestSubmitBlankIgnored(t *testing.T) {
	s, d, _, k := fixture(nil)
	s.Submit(context.Background(), "   ")
	s.Wait()
	assert.Empty(t, d.texts)
	assert.Empty(t, k.all())
}

func TestQuick(t *testing.T) {
	s, d, _, k := fixture(nil)
	assert.False(t, s.Quick(context.Background(), "dance"))
	assert.True(t, s.Quick(context.Background(), "notices"))
	s.Wait()
	assert.Equal(t, []string{"show latest notices from my department"}, d.texts)
	assert.Equal(t, RoleUser, k.all()[0].role)
}

func TestReadNoticesAloud(t *testing.T) {
	d, p, k := &dispatcher{}, &playback{}, &sink{}
	s := New(d, nil, p, k, WithUser(&adomain.User{ID: "u", Department: "EEE"}))
	s.ReadNoticesAloud()
	want := "Reading latest notices from EEE department. Check the notices page for complete details."
	assert.Equal(t, []msg{{RoleAssistant, want}}, k.all())
	require.Len(t, p.spoken, 1)
	assert.Equal(t, want, p.spoken[0].Text)

	s, _, _, k = fixture(nil)
	s.ReadNoticesAloud()
	assert.Contains(t, k.all()[0].text, "from your department")
}

func TestCloseStopsAndRefusesDispatch(t *testing.T) {
	c := &capture{supported: true}
	s, d, _, _ := fixture(c)
	s.Start(context.Background())
	s.Close()
	assert.Equal(t, 1, c.stops)
	s.Submit(context.Background(), "help")
	s.Wait()
	assert.Empty(t, d.texts)
}

func TestVoiceOverride(t *testing.T) {
	d, p, k := &dispatcher{}, &playback{}, &sink{}
	s := New(d, nil, p, k, WithVoice(Voice{Lang: "en-GB", Rate: 1, Pitch: 1.2, Volume: 1}))
	s.Speak("hi")
	assert.Equal(t, "en-GB", p.spoken[0].Lang)
}
