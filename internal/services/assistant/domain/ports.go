package domain

import "context"

// NoticeLister reads every notice in store order
type NoticeLister interface {
	ListNotices(ctx context.Context) ([]Notice, error)
}

// ReminderStore is the append-only reminder list
type ReminderStore interface {
	AppendReminder(ctx context.Context, owner, task, time string) (Reminder, error)
	ListReminders(ctx context.Context, owner string) ([]Reminder, error)
}

// Recorder receives one Event per dispatched command
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// RecorderFunc adapts a func to Recorder
type RecorderFunc func(context.Context, Event) error

// Record calls f
func (f RecorderFunc) Record(ctx context.Context, ev Event) error { return f(ctx, ev) }

// ServicePort is what the HTTP layer, the voice bridge and the CLI call
type ServicePort interface {
	Ask(ctx context.Context, user *User, in AskInput) (AskResult, error)
	Classify(ctx context.Context, in AskInput) (ClassifyResult, error)
	Quick(ctx context.Context, user *User, name string) (QuickResult, error)
	Reminders(ctx context.Context, user *User) ([]Reminder, error)
}
