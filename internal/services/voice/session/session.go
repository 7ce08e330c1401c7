// Package session is the voice assistant state machine. Platform speech
// capture, speech playback and the message sink are injected; the session
// turns transcripts into dispatched commands and speaks the replies
package session

import (
	"context"
	"strings"
	"sync"

	"pbl/internal/core/normalize"
	"pbl/internal/platform/logger"
	adomain "pbl/internal/services/assistant/domain"
	"pbl/internal/services/assistant/service"
)

// Messages the session emits on its own
const (
	MsgUnsupported  = "Voice recognition is not supported in your browser. Please use Chrome or Edge for voice features."
	MsgStartFailed  = "Error starting voice recognition. Please check microphone permissions."
	MsgListening    = "🎤 Listening... Speak now!"
	MsgRecognition  = "Sorry, I encountered an error with voice recognition. Please try typing instead."
	MsgDispatchFail = "Sorry, I couldn't process that request right now. Please try again."
)

// State of the recognition side. Speaking runs alongside either state
type State int

const (
	Idle State = iota
	Listening
)

func (s State) String() string {
	if s == Listening {
		return "listening"
	}
	return "idle"
}

// Role tags an emitted message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Utterance is one synthesis request
type Utterance struct {
	Text   string  `json:"text"`
	Lang   string  `json:"lang"`
	Rate   float64 `json:"rate"`
	Pitch  float64 `json:"pitch"`
	Volume float64 `json:"volume"`
}

// Capture is the speech recognition capability. Results arrive through
// OnResult, OnError and OnEnd
type Capture interface {
	Supported() bool
	Start(ctx context.Context) error
	Stop() error
}

// Playback is the speech synthesis capability
type Playback interface {
	Supported() bool
	Speak(u Utterance) error
	Cancel() error
}

// Sink receives chat messages
type Sink interface {
	Emit(role Role, text string)
}

// Dispatcher runs one command
type Dispatcher interface {
	Handle(ctx context.Context, text string, user *adomain.User) (adomain.Reply, error)
}

// Voice holds the synthesis settings
type Voice struct {
	Lang   string
	Rate   float64
	Pitch  float64
	Volume float64
}

// DefaultVoice is en-US, slightly slow and quiet
var DefaultVoice = Voice{Lang: "en-US", Rate: 0.9, Pitch: 1, Volume: 0.8}

// Option configures a Session
type Option func(*Session)

// WithUser sets the acting user; nil is anonymous
func WithUser(u *adomain.User) Option { return func(s *Session) { s.user = u } }

// WithVoice overrides DefaultVoice
func WithVoice(v Voice) Option { return func(s *Session) { s.voice = v } }

// WithLogger sets the session logger
func WithLogger(l *logger.Logger) Option { return func(s *Session) { s.log = l } }

// Session is one user's voice assistant
type Session struct {
	d        Dispatcher
	capture  Capture
	playback Playback
	sink     Sink
	user     *adomain.User
	voice    Voice
	log      *logger.Logger

	mu     sync.Mutex
	state  State
	closed bool

	speakMu sync.Mutex
	wg      sync.WaitGroup
}

// New builds a session. capture and playback may be nil when the platform
// has neither; d and sink are required
func New(d Dispatcher, capture Capture, playback Playback, sink Sink, opts ...Option) *Session {
	if d == nil || sink == nil {
		panic("voice session requires a dispatcher and a sink")
	}
	s := &Session{
		d:        d,
		capture:  capture,
		playback: playback,
		sink:     sink,
		voice:    DefaultVoice,
		log:      logger.Named("voice"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns the recognition state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start begins listening. While already listening it stops instead.
// Capture is called without holding the session lock so platform
// callbacks may arrive synchronously
func (s *Session) Start(ctx context.Context) {
	if s.capture == nil || !s.capture.Supported() {
		s.sink.Emit(RoleAssistant, MsgUnsupported)
		return
	}

	s.mu.Lock()
	if s.state == Listening {
		s.state = Idle
		s.mu.Unlock()
		s.stopCapture()
		return
	}
	s.state = Listening
	s.mu.Unlock()

	if err := s.capture.Start(ctx); err != nil {
		s.mu.Lock()
		s.state = Idle
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("start speech recognition")
		s.sink.Emit(RoleAssistant, MsgStartFailed)
		return
	}
	s.sink.Emit(RoleAssistant, MsgListening)
}

// Stop ends listening without waiting for the platform to confirm
func (s *Session) Stop() {
	if s.toIdle() {
		s.stopCapture()
	}
}

// toIdle forces Idle and reports whether the session was listening
func (s *Session) toIdle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.state == Listening
	s.state = Idle
	return was
}

func (s *Session) stopCapture() {
	if s.capture == nil {
		return
	}
	if err := s.capture.Stop(); err != nil {
		s.log.Warn().Err(err).Msg("stop speech recognition")
	}
}

// OnResult handles a transcript. Transcripts arriving while not listening
// are dropped
func (s *Session) OnResult(ctx context.Context, transcript string) {
	if s.State() != Listening {
		s.log.Debug().Msg("transcript outside a listening window dropped")
		return
	}
	s.sink.Emit(RoleUser, transcript)
	s.dispatch(ctx, transcript)
}

// OnError reports a recognition failure and returns to Idle
func (s *Session) OnError(reason string) {
	s.log.Warn().Str("reason", reason).Msg("speech recognition error")
	s.sink.Emit(RoleAssistant, MsgRecognition)
	s.mu.Lock()
	s.state = Idle
	s.mu.Unlock()
}

// OnEnd returns to Idle. Dispatches already running keep going
func (s *Session) OnEnd() {
	s.mu.Lock()
	s.state = Idle
	s.mu.Unlock()
}

// OnSpeechError logs a playback failure
func (s *Session) OnSpeechError(reason string) {
	s.log.Warn().Str("reason", reason).Msg("speech synthesis error")
}

// Submit handles typed input the same way as a transcript
func (s *Session) Submit(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.sink.Emit(RoleUser, text)
	s.dispatch(ctx, text)
}

// Quick runs a named quick command. Unknown names do nothing
func (s *Session) Quick(ctx context.Context, name string) bool {
	text, ok := service.QuickCommand(name)
	if !ok {
		s.log.Debug().Str("name", name).Msg("unknown quick command")
		return false
	}
	s.sink.Emit(RoleUser, text)
	s.dispatch(ctx, text)
	return true
}

// ReadNoticesAloud announces where to find the latest notices
func (s *Session) ReadNoticesAloud() {
	dept := "your"
	if s.user != nil && s.user.Department != "" {
		dept = s.user.Department
	}
	msg := "Reading latest notices from " + dept + " department. Check the notices page for complete details."
	s.sink.Emit(RoleAssistant, msg)
	s.Speak(msg)
}

func (s *Session) dispatch(ctx context.Context, text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		reply, err := s.d.Handle(adomain.WithChannel(ctx, adomain.ChannelVoice), text, s.user)
		if err != nil {
			s.log.Error().Err(err).Msg("voice command failed")
			s.sink.Emit(RoleAssistant, MsgDispatchFail)
			return
		}
		s.sink.Emit(RoleAssistant, reply.Text)
		s.Speak(reply.Text)
	}()
}

// Speak cancels the current utterance and hands cleaned text to playback
func (s *Session) Speak(text string) {
	if s.playback == nil || !s.playback.Supported() {
		return
	}
	s.speakMu.Lock()
	defer s.speakMu.Unlock()
	if err := s.playback.Cancel(); err != nil {
		s.log.Warn().Err(err).Msg("cancel speech")
	}
	u := Utterance{
		Text:   normalize.ForSpeech(text),
		Lang:   s.voice.Lang,
		Rate:   s.voice.Rate,
		Pitch:  s.voice.Pitch,
		Volume: s.voice.Volume,
	}
	if err := s.playback.Speak(u); err != nil {
		s.log.Warn().Err(err).Msg("speak")
	}
}

// Wait blocks until every dispatch started so far has finished
func (s *Session) Wait() { s.wg.Wait() }

// Close stops listening, refuses new dispatches and waits for running ones
func (s *Session) Close() {
	s.mu.Lock()
	was := s.state == Listening
	s.state = Idle
	s.closed = true
	s.mu.Unlock()
	if was {
		s.stopCapture()
	}
	s.wg.Wait()
}
