package httpkit

import (
	"net/http"

	perr "pbl/internal/platform/errors"
	pnet "pbl/internal/platform/net"
)

// Identity returns the acting user, or the anonymous identity
func Identity(r *http.Request) pnet.Identity {
	id, _ := pnet.IdentityFrom(r.Context())
	return id
}

// User returns the acting user or an Unauthorized error
func User(r *http.Request) (pnet.Identity, error) {
	id, ok := pnet.IdentityFrom(r.Context())
	if !ok || id.Anonymous() {
		return pnet.Identity{}, perr.Unauthorizedf("sign in required")
	}
	return id, nil
}

// Admin returns the acting user when they administer notices
func Admin(r *http.Request) (pnet.Identity, error) {
	id, err := User(r)
	if err != nil {
		return id, err
	}
	if !id.IsAdmin() {
		return id, perr.Forbiddenf("admin access required")
	}
	return id, nil
}
