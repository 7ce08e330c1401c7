package httpkit

import (
	"pbl/internal/platform/net/middleware"
)

// Protected groups routes that need a signed-in user
func Protected(r Router, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(middleware.RequireUser)
		fn(gr)
	})
}

// AdminOnly groups routes that need a notice administrator
func AdminOnly(r Router, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(middleware.RequireAdmin)
		fn(gr)
	})
}
