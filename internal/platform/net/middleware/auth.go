package middleware

import (
	"net/http"
	"strconv"
	"strings"

	perr "pbl/internal/platform/errors"
	"pbl/internal/platform/logger"
	pnet "pbl/internal/platform/net"
	phttp "pbl/internal/platform/net/http"
)

// Identity headers set by the upstream session layer
const (
	HeaderUserID         = "X-User-ID"
	HeaderUserName       = "X-User-Name"
	HeaderUserEmail      = "X-User-Email"
	HeaderUserDepartment = "X-User-Department"
	HeaderUserAdmin      = "X-User-Admin"
)

// IdentityPort resolves the acting user. A zero Identity with a nil error is
// an anonymous caller
type IdentityPort interface {
	Identify(r *http.Request) (pnet.Identity, error)
}

// HeaderIdentity trusts the X-User-* headers. Deploy it behind a gateway that
// strips them from client traffic
type HeaderIdentity struct{}

// Identify reads the identity headers
func (HeaderIdentity) Identify(r *http.Request) (pnet.Identity, error) {
	id := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if id == "" {
		return pnet.Identity{}, nil
	}
	admin := false
	if v := strings.TrimSpace(r.Header.Get(HeaderUserAdmin)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return pnet.Identity{}, perr.WithField(perr.Unauthorizedf("malformed admin flag"), HeaderUserAdmin)
		}
		admin = b
	}
	return pnet.Identity{
		ID:         id,
		Name:       strings.TrimSpace(r.Header.Get(HeaderUserName)),
		Email:      strings.TrimSpace(r.Header.Get(HeaderUserEmail)),
		Department: strings.TrimSpace(r.Header.Get(HeaderUserDepartment)),
		Admin:      admin,
	}, nil
}

// Identify attaches the resolved identity and seeds the request logger with
// request and user ids. A nil port leaves every request anonymous
func Identify(p IdentityPort) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			var who pnet.Identity
			if p != nil {
				var err error
				if who, err = p.Identify(r); err != nil {
					phttp.RespondError(w, r, err)
					return
				}
			}
			ctx = pnet.WithIdentity(ctx, who)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), who.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects anonymous callers with 401
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := pnet.IdentityFrom(r.Context()); !ok {
			phttp.RespondError(w, r, perr.Unauthorizedf("sign in required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects non admins with 403, anonymous callers with 401
func RequireAdmin(next http.Handler) http.Handler {
	return RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		who, _ := pnet.IdentityFrom(r.Context())
		if !who.IsAdmin() {
			phttp.RespondError(w, r, perr.Forbiddenf("admin only"))
			return
		}
		next.ServeHTTP(w, r)
	}))
}
