package middleware

import (
	"net/http"
	"runtime/debug"

	perr "pbl/internal/platform/errors"
	"pbl/internal/platform/logger"
	pnet "pbl/internal/platform/net"
	phttp "pbl/internal/platform/net/http"
)

// RecoverJSON turns a panic into the standard 500 envelope and logs the stack.
// http.ErrAbortHandler is re-panicked so the server aborts the response
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Str("path", r.URL.Path).
				Msg("panic recovered")

			if id := pnet.RequestID(r.Context()); id != "" {
				w.Header().Set("X-Request-ID", id)
			}
			phttp.RespondError(w, r, perr.PanicErrf("internal error"))
		}()
		next.ServeHTTP(w, r)
	})
}
