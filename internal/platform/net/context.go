// Package net carries request scoped values between transports and services
package net

import (
	"context"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Identity is the acting user as resolved by the auth middleware.
// A zero Identity means anonymous
type Identity struct {
	ID         string
	Name       string
	Email      string
	Department string
	Admin      bool
}

// Anonymous reports whether no user is attached
func (i Identity) Anonymous() bool { return i.ID == "" }

// IsAdmin follows the directory rule: the admin flag, or an email that
// mentions admin
func (i Identity) IsAdmin() bool {
	return i.Admin || strings.Contains(i.Email, "admin")
}

type ctxKey int

const keyIdentity ctxKey = iota

// WithRequestID sets the chi request id so chimw.GetReqID finds it
func WithRequestID(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithIdentity attaches the acting user; anonymous identities are not stored
func WithIdentity(ctx context.Context, id Identity) context.Context {
	if id.Anonymous() {
		return ctx
	}
	return context.WithValue(ctx, keyIdentity, id)
}

// IdentityFrom returns the acting user and whether one is present
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(keyIdentity).(Identity)
	return id, ok
}

// UserID returns the acting user's id, or ""
func UserID(ctx context.Context) string {
	id, _ := IdentityFrom(ctx)
	return id.ID
}
