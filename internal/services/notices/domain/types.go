// Package domain holds notice types and the notice service contract
package domain

import (
	"context"
	"time"

	pnet "pbl/internal/platform/net"
)

// Priorities a notice can carry
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Filter values besides a department code
const (
	FilterAll = "all"
	FilterMy  = "my"
)

// Notice is one department announcement
type Notice struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Department string    `json:"department" example:"CSE"`
	Priority   string    `json:"priority" example:"medium"`
	Author     string    `json:"author"`
	AuthorID   string    `json:"author_id,omitempty"`
	Color      string    `json:"color" example:"#4361ee"`
	CreatedAt  time.Time `json:"created_at"`
}

// QueryInput is the notice list query string
type QueryInput struct {
	Filter string `json:"filter" example:"my"`
	Search string `json:"q" example:"lab"`
}

// CreateInput is a new notice as posted by an admin
type CreateInput struct {
	Title      string `json:"title" validate:"required,min=5,max=200" example:"Lab schedule updated"`
	Content    string `json:"content" validate:"required,max=5000"`
	Department string `json:"department" validate:"required,notice_department" example:"CSE"`
	Priority   string `json:"priority,omitempty" validate:"omitempty,oneof=high medium low" example:"medium"`
}

// ServicePort defines the notice service contract
type ServicePort interface {
	Query(ctx context.Context, who pnet.Identity, in QueryInput) ([]Notice, error)
	Create(ctx context.Context, who pnet.Identity, in CreateInput) (Notice, error)
	Delete(ctx context.Context, who pnet.Identity, id string) error
	ListNotices(ctx context.Context) ([]Notice, error)
	Import(ctx context.Context, items []Notice) (int, error)
}
