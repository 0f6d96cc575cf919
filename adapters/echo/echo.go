// Package hxhocecho provides Echo framework integration for hxhoc components.
//
// Mount the component routes onto an Echo instance or group:
//
//	e := echo.New()
//	reg := hxhocecho.Mount(e)
//	reg.Add(profileCard)
//
// Or mount on a group with middleware:
//
//	g := e.Group("/app", authMiddleware)
//	reg := hxhocecho.MountGroup(g)
//	reg.Add(profileCard)
//
// Registry URLs are rooted at "/_c/". Under a group, prefix them with the
// group path when rendering links.
package hxhocecho

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/hxhoc"
)

const routePrefix = "/_c/"

// Option configures the Mount and MountGroup functions.
type Option func(*options)

type options struct {
	key     []byte
	regOpts []hxhoc.RegistryOption
}

// WithKey sets the encryption key for the registry.
// The key should be at least 32 bytes of cryptographically random data.
// If not provided, a random key is generated (suitable for development only).
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithRegistryOptions passes options through to hxhoc.NewRegistry.
//
//	reg := hxhocecho.Mount(e,
//	    hxhocecho.WithRegistryOptions(hxhoc.WithMetrics(metrics)),
//	)
func WithRegistryOptions(opts ...hxhoc.RegistryOption) Option {
	return func(o *options) {
		o.regOpts = append(o.regOpts, opts...)
	}
}

// Mount creates a registry and mounts the component handler on an Echo instance.
//
//	e := echo.New()
//	reg := hxhocecho.Mount(e)
//	reg.Add(profileCard)
//
//	// With options:
//	reg := hxhocecho.Mount(e, hxhocecho.WithKey(key))
func Mount(e *echo.Echo, opts ...Option) *hxhoc.Registry {
	reg := newRegistry(opts)
	e.Any(routePrefix+"*", handler(reg))
	return reg
}

// MountGroup creates a registry and mounts the component handler on an Echo group.
// This allows components to share middleware with the group (auth, logging, etc.).
//
//	g := e.Group("/app", authMiddleware)
//	reg := hxhocecho.MountGroup(g)
//	reg.Add(profileCard)
func MountGroup(g *echo.Group, opts ...Option) *hxhoc.Registry {
	reg := newRegistry(opts)
	g.Any(routePrefix+"*", handler(reg))
	return reg
}

func newRegistry(opts []Option) *hxhoc.Registry {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("hxhocecho: failed to generate random key: %v", err))
		}
	}

	return hxhoc.NewRegistry(key, o.regOpts...)
}

// handler serves registry routes, dropping any group prefix in front of
// "/_c/" so the registry sees the paths it registered.
func handler(reg *hxhoc.Registry) echo.HandlerFunc {
	h := reg.Handler()
	return func(c echo.Context) error {
		r := c.Request()
		if i := strings.Index(r.URL.Path, routePrefix); i > 0 {
			r = r.Clone(r.Context())
			r.URL.Path = r.URL.Path[i:]
			r.URL.RawPath = ""
		}
		h.ServeHTTP(c.Response(), r)
		return nil
	}
}

// Render writes a templ component to the Echo response. A rendered
// *hxhoc.Node is a templ.Component.
//
//	func handler(c echo.Context) error {
//	    node, err := hoc.Render(c.Request().Context(), props)
//	    if err != nil {
//	        return err
//	    }
//	    return hxhocecho.Render(c, node)
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
