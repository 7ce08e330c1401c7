package repo

import (
	"context"
	"slices"
	"sync"

	ptime "pbl/internal/platform/time"
	"pbl/internal/services/notices/domain"
)

// Memory keeps notices in process, newest stored first
type Memory struct {
	mu    sync.RWMutex
	items []domain.Notice
	clock ptime.Clock
}

// NewMemory returns an empty notice list. A nil clock is the system clock
func NewMemory(clock ptime.Clock) *Memory {
	if clock == nil {
		clock = ptime.System
	}
	return &Memory{clock: clock}
}

func (m *Memory) List(context.Context) ([]domain.Notice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.items), nil
}

func (m *Memory) Insert(_ context.Context, n domain.Notice) (domain.Notice, error) {
	if n.ID == "" {
		n.ID = newID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = m.clock.Now().UTC()
	}
	m.mu.Lock()
	m.items = slices.Insert(m.items, 0, n)
	m.mu.Unlock()
	return n, nil
}

func (m *Memory) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.items, func(n domain.Notice) bool { return n.ID == id })
	if i < 0 {
		return false, nil
	}
	m.items = slices.Delete(m.items, i, i+1)
	return true, nil
}

func (m *Memory) Count(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.items)), nil
}

func (m *Memory) Exists(_ context.Context, title, department string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.ContainsFunc(m.items, func(n domain.Notice) bool {
		return n.Title == title && n.Department == department
	}), nil
}
