// Package http exposes command usage summaries
package http

import (
	"context"
	stdhttp "net/http"
	"time"

	"pbl/internal/modkit/httpkit"
	perr "pbl/internal/platform/errors"
	ptime "pbl/internal/platform/time"
	"pbl/internal/services/telemetry/domain"
)

// Summarizer is the read side of the recorder
type Summarizer interface {
	Summary(ctx context.Context, since time.Time) (domain.Summary, error)
}

// MaxWindow bounds the since query parameter
const MaxWindow = 90 * 24 * time.Hour

// Register mounts the admin-only summary endpoint
func Register(r httpkit.Router, s Summarizer, clock ptime.Clock) {
	h := &handlers{svc: s, clock: clock}
	httpkit.AdminOnly(r, func(ar httpkit.Router) {
		httpkit.Get(ar, "/summary", h.summary)
	})
}

type handlers struct {
	svc   Summarizer
	clock ptime.Clock
}

// @Summary Command usage by intent
// @Tags Telemetry
// @Produce json
// @Param since query string false "Look-back window as a Go duration" default(24h)
// @Success 200 {object} domain.Summary "ok"
// @Router /telemetry/summary [get]
func (h *handlers) summary(r *stdhttp.Request) (any, error) {
	window := 24 * time.Hour
	if v := r.URL.Query().Get("since"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 || d > MaxWindow {
			return nil, perr.WithField(perr.InvalidArgf("since must be a positive duration up to %s", MaxWindow), "since")
		}
		window = d
	}
	return h.svc.Summary(r.Context(), h.clock.Now().Add(-window))
}
