// Package httpkit is the HTTP surface modules build on. It re-exports the
// platform router and response helpers so service packages import one place
package httpkit

import (
	"net/http"

	phttp "pbl/internal/platform/net/http"
)

type (
	// Router is the platform router seam
	Router = phttp.Router
	// Handler is the platform handler type
	Handler = phttp.Handler
	// Response is a return-style handler result
	Response = phttp.Response
	// Envelope is the JSON body wrapper
	Envelope = phttp.Envelope
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error maps err to its status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Param reads a URL parameter from the matched route
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }
