package hxhoc

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"sync"
)

// Registry is a reference host: it serves HOCs over HTTP and drives one
// Instance per request through Mount, Render and Unmount.
//
// Props travel in the "p" parameter, encoded by the registry's Encoder
// (signed by default, encrypted for Sensitive HOCs). Injected props come from
// the optional HocSource, which sees the request.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	encoder    *Encoder
	components map[string]*HOC // map[prefix]component
	logger     *slog.Logger
	metrics    *Metrics
	hocSource  func(*http.Request) Props

	// OnError is called when a request fails.
	// Customize this to handle errors appropriately for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// RegistryOption configures NewRegistry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger for request failures.
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(reg *Registry) {
		reg.logger = logger
	}
}

// WithMetrics records lifecycle, render and error counts.
func WithMetrics(m *Metrics) RegistryOption {
	return func(reg *Registry) {
		reg.metrics = m
	}
}

// WithHocSource sets the function that computes injected props for each
// request, e.g. from authentication context or headers.
func WithHocSource(fn func(*http.Request) Props) RegistryOption {
	return func(reg *Registry) {
		reg.hocSource = fn
	}
}

// NewRegistry creates a new component registry with the given encryption key.
func NewRegistry(encryptionKey []byte, opts ...RegistryOption) *Registry {
	enc, err := NewEncoder(encryptionKey)
	if err != nil {
		panic(fmt.Sprintf("hxhoc: failed to create encoder: %v", err))
	}

	reg := &Registry{
		mux:        http.NewServeMux(),
		encoder:    enc,
		components: make(map[string]*HOC),
		logger:     discardLogger(),
	}
	for _, opt := range opts {
		opt(reg)
	}

	// Default error handler
	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		switch {
		case IsNotFound(err):
			http.Error(w, "Not found", http.StatusNotFound)
		case IsDecryptionError(err), IsInvalidFormat(err):
			http.Error(w, "Bad request", http.StatusBadRequest)
		default:
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
	}

	return reg
}

// Encoder returns the registry's encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Add registers HOCs with the registry.
// Panics on a nil HOC or a prefix collision.
func (reg *Registry) Add(hocs ...*HOC) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, h := range hocs {
		if h == nil {
			panic("hxhoc: cannot register nil component")
		}
		prefix := h.Prefix()
		if _, exists := reg.components[prefix]; exists {
			panic(fmt.Sprintf("hxhoc: prefix collision for %q", prefix))
		}
		reg.components[prefix] = h

		hoc := h
		reg.mux.HandleFunc(prefix+"/", func(w http.ResponseWriter, r *http.Request) {
			reg.serve(hoc, w, r)
		})
	}
}

// Lookup returns the HOC registered under prefix.
func (reg *Registry) Lookup(prefix string) (*HOC, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	h, ok := reg.components[prefix]
	return h, ok
}

// Prefixes returns the registered prefixes in sorted order.
func (reg *Registry) Prefixes() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]string, 0, len(reg.components))
	for p := range reg.components {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// URL returns the render URL for h with the given props.
func (reg *Registry) URL(h *HOC, props Props) (string, error) {
	if _, ok := reg.Lookup(h.Prefix()); !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, h.Name())
	}
	encoded, err := EncodeProps(reg.encoder, h, props)
	if err != nil {
		return "", err
	}
	return h.Prefix() + "/?p=" + url.QueryEscape(encoded), nil
}

// Handler returns the HTTP handler for component routes.
// Mount this at "/_c/" in your application.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CSRF protection: mutating methods require HX-Request header
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			if !IsHTMX(r) {
				http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
				return
			}
		}

		if _, pattern := reg.mux.Handler(r); pattern == "" {
			reg.fail(nil, w, r, fmt.Errorf("%w: %s", ErrNotFound, r.URL.Path))
			return
		}
		reg.mux.ServeHTTP(w, r)
	})
}

// serve drives a single instance of h for one request.
func (reg *Registry) serve(h *HOC, w http.ResponseWriter, r *http.Request) {
	props := Props{}
	if p := r.FormValue("p"); p != "" {
		decoded, err := DecodeProps(reg.encoder, h, p)
		if err != nil {
			reg.fail(h, w, r, err)
			return
		}
		props = decoded
	}

	inst := h.New(props)
	if reg.hocSource != nil {
		inst.SetHocProps(reg.hocSource(r))
	}

	html, err := reg.drive(r.Context(), inst)
	if err != nil {
		reg.fail(h, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(html)
	reg.logger.DebugContext(r.Context(), "component served",
		append([]any{AttrComponent, h.Name(), AttrInstance, inst.ID()}, requestAttrs(r)...)...)
}

// requestAttrs describes the HTMX context of r for log records.
func requestAttrs(r *http.Request) []any {
	return []any{
		"path", r.URL.Path,
		"htmx", IsHTMX(r),
		"boosted", IsBoosted(r),
		"target", TargetID(r),
		"current_url", CurrentURL(r),
	}
}

// drive mounts, renders and unmounts inst. The tree is buffered so a failed
// render never leaves partial output on the wire.
func (reg *Registry) drive(ctx context.Context, inst *Instance) ([]byte, error) {
	name := inst.HOC().Name()

	if err := inst.Mount(ctx); err != nil {
		return nil, err
	}
	reg.metrics.observeLifecycle(name, EventMounted)
	defer func() {
		if err := inst.Unmount(ctx); err != nil {
			reg.logger.ErrorContext(ctx, "unmount failed", AttrComponent, name, AttrInstance, inst.ID(), "error", err)
			return
		}
		reg.metrics.observeLifecycle(name, EventUnmounted)
	}()

	node, err := inst.Render(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := node.Render(ctx, &buf); err != nil {
		return nil, err
	}
	reg.metrics.observeRender(name)
	return buf.Bytes(), nil
}

func (reg *Registry) fail(h *HOC, w http.ResponseWriter, r *http.Request, err error) {
	name := ""
	if h != nil {
		name = h.Name()
	}
	reg.metrics.observeError(name, err)
	reg.logger.ErrorContext(r.Context(), "component request failed",
		append([]any{AttrComponent, name, "error", err}, requestAttrs(r)...)...)
	reg.OnError(w, r, err)
}
