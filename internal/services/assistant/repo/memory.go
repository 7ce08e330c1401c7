package repo

import (
	"context"
	"sync"

	ptime "pbl/internal/platform/time"
	"pbl/internal/services/assistant/domain"
)

// Memory is an append-only reminder list held in process. Safe for
// concurrent use; appends keep arrival order
type Memory struct {
	mu    sync.Mutex
	items []domain.Reminder
	clock ptime.Clock
}

// NewMemory returns an empty list. A nil clock is the system clock
func NewMemory(clock ptime.Clock) *Memory {
	if clock == nil {
		clock = ptime.System
	}
	return &Memory{clock: clock}
}

// AppendReminder implements domain.ReminderStore
func (m *Memory) AppendReminder(_ context.Context, owner, task, tm string) (domain.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rem := domain.Reminder{
		ID:        newID(),
		Owner:     owner,
		Task:      task,
		Time:      tm,
		CreatedAt: m.clock.Now().UTC(),
	}
	m.items = append(m.items, rem)
	return rem, nil
}

// ListReminders implements domain.ReminderStore
func (m *Memory) ListReminders(_ context.Context, owner string) ([]domain.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Reminder{}
	for _, r := range m.items {
		if r.Owner == owner {
			out = append(out, r)
		}
	}
	return out, nil
}

// Len is the number of reminders across all owners
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
