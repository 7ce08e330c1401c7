package modkit

import (
	"net/http"

	"pbl/internal/modkit/httpkit"
	str "pbl/internal/platform/strings"
)

// Built is the resolved option set
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(httpkit.Router)
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// InjectedPorts returns the ports passed with WithPorts as T
func InjectedPorts[T any](b Built) (T, bool) {
	p, ok := b.Ports.(T)
	return p, ok
}

// Base carries the mounting behaviour modules share. A module embeds it and
// sets Routes to its own registration
type Base struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	ports  any
	routes func(httpkit.Router)
}

// NewBase resolves defaults then opts. routes registers the module's own
// endpoints; a WithRegister hook runs after it
func NewBase(name, prefix string, routes func(httpkit.Router), opts ...Option) Base {
	b := Build(append([]Option{WithName(name), WithPrefix(prefix)}, opts...)...)
	extra := b.Register
	return Base{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		routes: func(r httpkit.Router) {
			if routes != nil {
				routes(r)
			}
			if extra != nil {
				extra(r)
			}
		},
	}
}

// SetPorts sets what Ports returns
func (b *Base) SetPorts(p any) { b.ports = p }

// MountRoutes mounts the module under its prefix with its middleware
func (b *Base) MountRoutes(r httpkit.Router) {
	r.Route(str.MustPrefix(b.prefix), func(rr httpkit.Router) {
		if len(b.mws) > 0 {
			rr.Use(b.mws...)
		}
		if b.routes != nil {
			b.routes(rr)
		}
	})
}

// Name returns the module name
func (b *Base) Name() string { return b.name }

// Prefix returns the module route prefix
func (b *Base) Prefix() string { return str.MustPrefix(b.prefix) }

// Ports returns the module's port set
func (b *Base) Ports() any { return b.ports }
