package middleware

import (
	"net/http"
	"time"

	"pbl/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

// Metrics records request count and latency per route pattern. The pattern is
// read after the handler ran, once chi has finished matching
func Metrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, r)

			route := ""
			if rc := chi.RouteContext(r.Context()); rc != nil {
				route = rc.RoutePattern()
			}
			m.ObserveHTTP(r.Method, route, cw.status, time.Since(start))
		})
	}
}
