// Package service holds the assistant workflows: reply generation, dispatch
// and the request facing service the transports call
package service

import (
	"context"

	"pbl/internal/core/intent"
	perr "pbl/internal/platform/errors"
	"pbl/internal/services/assistant/domain"
)

// Service defines the service contract for the assistant
type Service interface{ domain.ServicePort }

// Svc implements Service over a Dispatcher and the reminder store
type Svc struct {
	d         *Dispatcher
	reminders domain.ReminderStore
}

// New creates the assistant service
func New(d *Dispatcher, reminders domain.ReminderStore) *Svc {
	if d == nil || reminders == nil {
		panic("assistant.Service requires a dispatcher and a reminder store")
	}
	return &Svc{d: d, reminders: reminders}
}

// Dispatcher exposes the dispatcher for the voice session
func (s *Svc) Dispatcher() *Dispatcher { return s.d }

// Ask handles one command
func (s *Svc) Ask(ctx context.Context, user *domain.User, in domain.AskInput) (domain.AskResult, error) {
	r, err := s.d.Handle(ctx, in.Text, user)
	if err != nil {
		return domain.AskResult{}, err
	}
	return domain.AskResult{Intent: r.Intent, Reply: r.Text}, nil
}

// Classify reports the intent and the keyword hits behind it
func (s *Svc) Classify(_ context.Context, in domain.AskInput) (domain.ClassifyResult, error) {
	hits := s.d.Explain(in.Text)
	if hits == nil {
		hits = []intent.Hit{}
	}
	return domain.ClassifyResult{Intent: s.d.Classify(in.Text), Hits: hits}, nil
}

// Quick runs a named quick command
func (s *Svc) Quick(ctx context.Context, user *domain.User, name string) (domain.QuickResult, error) {
	text, r, err := s.d.Quick(ctx, name, user)
	if err != nil {
		return domain.QuickResult{}, err
	}
	return domain.QuickResult{Command: text, Intent: r.Intent, Reply: r.Text}, nil
}

// Reminders lists the user's reminders in the order they were set.
// Anonymous reminders are listed for anonymous callers
func (s *Svc) Reminders(ctx context.Context, user *domain.User) ([]domain.Reminder, error) {
	owner := ""
	if user != nil {
		owner = user.ID
	}
	rs, err := s.reminders.ListReminders(ctx, owner)
	if err != nil {
		return nil, perr.ExternalStoref(err, "list reminders")
	}
	return rs, nil
}
