package service

import (
	"context"
	"time"

	"pbl/internal/core/intent"
	"pbl/internal/core/normalize"
	perr "pbl/internal/platform/errors"
	"pbl/internal/platform/logger"
	ptime "pbl/internal/platform/time"
	"pbl/internal/services/assistant/domain"
)

// Dispatcher classifies a command and generates its reply. It keeps no state
// between calls
type Dispatcher struct {
	classifier *intent.Classifier
	gen        *Generator
	rec        domain.Recorder
	clock      ptime.Clock
}

// NewDispatcher wires a classifier and generator. rec may be nil
func NewDispatcher(c *intent.Classifier, g *Generator, rec domain.Recorder) *Dispatcher {
	if c == nil || g == nil {
		panic("assistant.Dispatcher requires a classifier and a generator")
	}
	return &Dispatcher{classifier: c, gen: g, rec: rec, clock: g.clock}
}

// Classify is the classifier step on its own
func (d *Dispatcher) Classify(text string) intent.Intent { return d.classifier.Classify(text) }

// Explain lists the keyword hits behind a classification
func (d *Dispatcher) Explain(text string) []intent.Hit { return d.classifier.Explain(text) }

// Handle runs classify then generate. The outcome is reported to the recorder
// whatever happens; recorder errors are logged and never reach the caller
func (d *Dispatcher) Handle(ctx context.Context, text string, user *domain.User) (domain.Reply, error) {
	start := d.clock.Now()
	text = normalize.Sanitize(text)
	cmd := domain.Command{Text: text, User: user}

	in := d.classifier.Classify(text)
	out, err := d.gen.Generate(ctx, in, cmd)
	d.record(ctx, in, cmd, start, err)
	if err != nil {
		return domain.Reply{Intent: in}, err
	}
	return domain.Reply{Intent: in, Text: out}, nil
}

// Quick expands a quick command name and handles the result
func (d *Dispatcher) Quick(ctx context.Context, name string, user *domain.User) (string, domain.Reply, error) {
	text, ok := QuickCommand(name)
	if !ok {
		return "", domain.Reply{}, perr.WithField(perr.InvalidArgf("unknown quick command %q", name), "name")
	}
	reply, err := d.Handle(ctx, text, user)
	return text, reply, err
}

// QuickCommand returns the text behind a quick action
func QuickCommand(name string) (string, bool) {
	s, ok := quickCommands[name]
	return s, ok
}

func (d *Dispatcher) record(ctx context.Context, in intent.Intent, cmd domain.Command, start time.Time, err error) {
	if d.rec == nil {
		return
	}
	now := d.clock.Now()
	ev := domain.Event{
		At:         now,
		Intent:     in,
		Department: cmd.Department(),
		Channel:    domain.ChannelFrom(ctx),
		Latency:    now.Sub(start),
		Failed:     err != nil,
	}
	if rerr := d.rec.Record(ctx, ev); rerr != nil {
		logger.C(ctx).Warn().Err(rerr).Str("intent", in.String()).Msg("telemetry record failed")
	}
}
