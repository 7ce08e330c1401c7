package module

import (
	"context"

	"pbl/internal/services/assistant/domain"
	"pbl/internal/services/assistant/service"
)

// Ports is what the assistant exposes to other modules
type Ports struct {
	Service    domain.ServicePort
	Dispatcher *service.Dispatcher
}

// Inject carries the collaborators the assistant borrows. Both are optional:
// without Notices every notice request is answered from an empty list
type Inject struct {
	Notices  domain.NoticeLister
	Recorder domain.Recorder
}

// NoticesFunc adapts a func to domain.NoticeLister
type NoticesFunc func(context.Context) ([]domain.Notice, error)

// ListNotices calls f
func (f NoticesFunc) ListNotices(ctx context.Context) ([]domain.Notice, error) { return f(ctx) }

type noNotices struct{}

func (noNotices) ListNotices(context.Context) ([]domain.Notice, error) { return nil, nil }
