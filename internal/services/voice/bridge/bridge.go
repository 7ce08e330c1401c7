// Package bridge runs a voice session over a websocket. The browser owns the
// microphone and the synthesizer; the bridge drives them with JSON frames
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"pbl/internal/core/version"
	"pbl/internal/platform/logger"
	"pbl/internal/platform/metrics"
	adomain "pbl/internal/services/assistant/domain"
	"pbl/internal/services/voice/session"

	"github.com/gorilla/websocket"
)

var errClosed = errors.New("voice bridge closed")

// Config tunes a connection
type Config struct {
	HelloTimeout time.Duration
	PingEvery    time.Duration
	PongWait     time.Duration
	WriteTimeout time.Duration
	MaxFrame     int64
	Voice        session.Voice
}

func (c Config) withDefaults() Config {
	if c.HelloTimeout <= 0 {
		c.HelloTimeout = 10 * time.Second
	}
	if c.PongWait <= 0 {
		c.PongWait = 60 * time.Second
	}
	if c.PingEvery <= 0 || c.PingEvery >= c.PongWait {
		c.PingEvery = c.PongWait * 9 / 10
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.MaxFrame <= 0 {
		c.MaxFrame = 16 << 10
	}
	if c.Voice.Lang == "" {
		c.Voice = session.DefaultVoice
	}
	return c
}

// Conn adapts one websocket to the session's capture, playback and sink
type Conn struct {
	ws      *websocket.Conn
	cfg     Config
	metrics *metrics.Metrics
	log     *logger.Logger

	writeMu sync.Mutex
	closed  bool
	hello   inFrame
}

// Serve runs the hello handshake and the read loop until the client goes
// away or ctx ends. Commands dispatched before the disconnect still finish
func Serve(ctx context.Context, ws *websocket.Conn, d session.Dispatcher, user *adomain.User, m *metrics.Metrics, cfg Config) error {
	cfg = cfg.withDefaults()
	c := &Conn{ws: ws, cfg: cfg, metrics: m, log: logger.C(ctx)}
	defer ws.Close()

	if err := c.handshake(); err != nil {
		return err
	}
	m.VoiceSessionOpened()
	defer m.VoiceSessionClosed()

	s := session.New(d, c, playback{c}, c,
		session.WithUser(user),
		session.WithVoice(cfg.Voice),
		session.WithLogger(c.log),
	)
	defer s.Close()

	stop := c.keepalive()
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			_ = c.ws.SetReadDeadline(time.Now())
		case <-stop:
		}
	}()

	for {
		f, err := c.read()
		if err != nil {
			if ctx.Err() != nil {
				_ = c.ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(c.cfg.WriteTimeout))
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		c.route(ctx, s, f)
	}
}

func (c *Conn) handshake() error {
	c.ws.SetReadLimit(c.cfg.MaxFrame)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.cfg.HelloTimeout))
	f, err := c.read()
	if err != nil {
		return err
	}
	if f.Type != InHello {
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected hello"),
			time.Now().Add(c.cfg.WriteTimeout))
		return errors.New("voice bridge: expected hello, got " + f.Type)
	}
	c.hello = f

	_ = c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	bi := version.Info()
	return c.write(OutWelcome, welcomeFrame{Type: OutWelcome, Service: bi.Service, Version: bi.Version})
}

func (c *Conn) keepalive() chan struct{} {
	stop := make(chan struct{})
	go func() {
		t := time.NewTicker(c.cfg.PingEvery)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				c.writeMu.Lock()
				err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.cfg.WriteTimeout))
				c.writeMu.Unlock()
				if err != nil {
					return
				}
			}
		}
	}()
	return stop
}

func (c *Conn) read() (inFrame, error) {
	var f inFrame
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		return f, err
	}
	if err := json.Unmarshal(data, &f); err != nil {
		c.log.Debug().Err(err).Msg("voice frame ignored")
		c.metrics.VoiceFrame("in", "invalid")
		return inFrame{}, nil
	}
	f.Type = strings.ToLower(strings.TrimSpace(f.Type))
	c.metrics.VoiceFrame("in", f.Type)
	return f, nil
}

func (c *Conn) route(ctx context.Context, s *session.Session, f inFrame) {
	switch f.Type {
	case InToggle:
		s.Start(ctx)
	case InStop:
		s.Stop()
	case InSay:
		s.Submit(ctx, f.Text)
	case InQuick:
		s.Quick(ctx, f.Name)
	case InReadNotices:
		s.ReadNoticesAloud()
	case InResult:
		s.OnResult(ctx, f.Text)
	case InError:
		s.OnError(f.Reason)
	case InEnd:
		s.OnEnd()
	case InSpeechError:
		s.OnSpeechError(f.Reason)
	case "":
	default:
		c.log.Debug().Str("type", f.Type).Msg("unknown voice frame")
	}
}

func (c *Conn) write(typ string, v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.closed {
		return errClosed
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	if err := c.ws.WriteJSON(v); err != nil {
		c.closed = true
		return err
	}
	c.metrics.VoiceFrame("out", typ)
	return nil
}

// Supported reports whether the browser announced speech recognition
func (c *Conn) Supported() bool { return c.hello.Recognition }

// Start asks the browser to open the microphone
func (c *Conn) Start(context.Context) error {
	return c.write(OutListen, listenFrame{Type: OutListen, On: true})
}

// Stop asks the browser to stop recognition
func (c *Conn) Stop() error {
	return c.write(OutListen, listenFrame{Type: OutListen, On: false})
}

// Emit sends a chat message
func (c *Conn) Emit(role session.Role, text string) {
	if err := c.write(OutMessage, messageFrame{Type: OutMessage, Role: role, Text: text}); err != nil {
		c.log.Debug().Err(err).Msg("voice message not delivered")
	}
}

// playback is the synthesis half of Conn; it differs from capture only in
// which hello flag gates it
type playback struct{ *Conn }

func (p playback) Supported() bool { return p.hello.Synthesis }

func (p playback) Speak(u session.Utterance) error {
	return p.write(OutSpeak, speakFrame{Type: OutSpeak, Utterance: u})
}

func (p playback) Cancel() error {
	return p.write(OutSpeakCancel, cancelFrame{Type: OutSpeakCancel})
}
