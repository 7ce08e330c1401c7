package httpkit

import (
	"net/http"
	"time"

	"pbl/internal/platform/metrics"
	"pbl/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	SlowRequest time.Duration
	Metrics     *metrics.Metrics

	// Identity resolves the acting user; nil means the X-User-* headers
	Identity middleware.IdentityPort
}

// CommonStack is the middleware every /api/v1 route runs behind. There is no
// global timeout: the voice websocket outlives any request deadline
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	id := o.Identity
	if id == nil {
		id = middleware.HeaderIdentity{}
	}
	slow := o.SlowRequest
	if slow <= 0 {
		slow = time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RealIP(),
		middleware.RequestID(),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: slow, Skip: []string{"/api/v1/meta/health"}}),
		middleware.Metrics(o.Metrics),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Identify(id),
	}
}
